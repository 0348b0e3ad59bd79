package upstream

import (
	"net/url"
	"strings"

	"github.com/valyala/bytebufferpool"
)

// BuildURL joins base and endpoint and appends query in a stable key order.
func BuildURL(base, endpoint string, query url.Values) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(strings.TrimRight(base, "/"))
	if endpoint = strings.Trim(endpoint, "/"); endpoint != "" {
		_ = buf.WriteByte('/')
		_, _ = buf.WriteString(endpoint)
	}
	if encoded := query.Encode(); encoded != "" {
		_ = buf.WriteByte('?')
		_, _ = buf.WriteString(encoded)
	}
	return buf.String()
}
