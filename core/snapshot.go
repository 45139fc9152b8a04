package core

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// BaseConfiguration returns the memoized base configuration, rebuilding it
// when any contribution changed since the last build.
//
// The provider list is external serializations first, then registered
// providers in registration order, de-duplicated. Tokens are listed in
// ascending numeric order. The same store contents always yield identical
// strings.
func (r *Registry) BaseConfiguration() BaseConfiguration {
	r.cacheMu.Lock()
	defer r.cacheMu.Unlock()

	if r.cachedValid && r.cachedVersion == r.version.Load() {
		return r.cached
	}

	startedAt := time.Now()
	snapshot := r.buildBaseConfiguration()
	r.cached = snapshot
	r.cachedVersion = snapshot.Version
	r.cachedValid = true
	r.observeRebuild(snapshot, startedAt)
	return snapshot
}

// buildBaseConfiguration reads the store under its read lock so the snapshot
// and the version it is tagged with always agree.
func (r *Registry) buildBaseConfiguration() BaseConfiguration {
	r.mu.RLock()
	version := r.version.Load()
	serializations := joinSerializations(r.external, r.providers)
	tokens := joinTokens(r.tokens)
	r.mu.RUnlock()

	return BaseConfiguration{
		Serializations: serializations,
		Tokens:         tokens,
		Version:        version,
		Fingerprint:    fingerprint(serializations, tokens),
	}
}

func joinSerializations(external []TypeName, registered []TypeName) string {
	seen := make(map[TypeName]struct{}, len(external)+len(registered))
	names := make([]string, 0, len(external)+len(registered))
	for _, group := range [][]TypeName{external, registered} {
		for _, name := range group {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name.String())
		}
	}
	return strings.Join(names, ",")
}

func joinTokens(tokens map[int]TypeName) string {
	keys := make([]int, 0, len(tokens))
	for token := range tokens {
		keys = append(keys, token)
	}
	sort.Ints(keys)
	pairs := make([]string, 0, len(keys))
	for _, token := range keys {
		pairs = append(pairs, strconv.Itoa(token)+"="+tokens[token].String())
	}
	return strings.Join(pairs, ",")
}

func fingerprint(serializations string, tokens string) uint64 {
	digest := xxhash.New()
	_, _ = digest.WriteString(serializations)
	_, _ = digest.Write([]byte{0})
	_, _ = digest.WriteString(tokens)
	return digest.Sum64()
}
