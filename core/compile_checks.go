package core

import glog "github.com/goliatone/go-logger/glog"

var (
	_ ContributionStore = (*Registry)(nil)
	_ SnapshotSource    = (*Registry)(nil)
	_ ConnectorFactory  = (*Registry)(nil)
	_ StrategyFactory   = StrategyFactoryFunc(nil)

	_ Logger         = glog.Nop()
	_ LoggerProvider = glog.ProviderFromLogger(glog.Nop())
)
