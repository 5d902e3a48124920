package memcache_fx

import (
	"go.uber.org/fx"

	mem "tripwise/pkg/memcache"
)

var Module = fx.Provide(
	provideShareLinks)

func provideShareLinks() mem.ShareLinkStore {
	return mem.NewShareLinks()
}
