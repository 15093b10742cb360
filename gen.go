//go:generate mockgen -package mock -source pkg/nsd/platform.go -destination internal/mock/platform.go
//go:generate mockgen -package mock -source internal/wrap/mdns.go -destination internal/mock/mdns.go
//go:generate mockgen -package mock -source internal/wrap/zeroconf.go -destination internal/mock/zeroconf.go
//go:generate mockgen -package mock -source internal/wrap/xdg.go -destination internal/mock/xdg.go
package mdnssearch
