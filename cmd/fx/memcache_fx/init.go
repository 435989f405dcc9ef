package memcache_fx

import (
	"go.uber.org/fx"
	mem "studymate/pkg/memcache"
)

var Module = fx.Provide(
	provideResetTokenStore, provideRecentStores)

func provideResetTokenStore() mem.ResetTokenStore {
	return mem.NewResetTokens()
}

func provideRecentStores() *mem.RecentStores {
	return mem.NewRecentStores()
}
