package common

import (
	"net/http"

	"github.com/futig/form-builder/internal/config"
	pkgHTTP "github.com/futig/form-builder/pkg/http"
)

// NewBaseClient builds the outbound HTTP client used by provider SDKs.
// headers are attached to every request; empty values are dropped.
func NewBaseClient(cfg config.HTTPClientConfig, headers map[string]string) *http.Client {
	opts := []pkgHTTP.HttpOpts{
		pkgHTTP.WithRequestTimeout(cfg.RequestTimeout),
		pkgHTTP.WithConnClientTimeout(cfg.ConnTimeout),
		pkgHTTP.WithClientKeepAlive(cfg.KeepAlive),
		pkgHTTP.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkgHTTP.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkgHTTP.WithRequestLogging(),
	}

	if len(headers) > 0 {
		opts = append(opts, pkgHTTP.WithHeaders(headers))
	}

	return pkgHTTP.NewClient(opts...)
}
