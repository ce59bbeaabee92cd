package domain

import (
	"encoding/base64"
	"strings"
)

// LogoKind classifies how a logo is stored.
type LogoKind int

const (
	LogoNone   LogoKind = iota
	LogoRemote          // absolute http(s) URL
	LogoStatic          // path relative to the static image root, e.g. /images/x.jpg
	LogoInline          // data:<mime>;base64,<payload>
)

func (k LogoKind) String() string {
	switch k {
	case LogoRemote:
		return "remote"
	case LogoStatic:
		return "static"
	case LogoInline:
		return "inline"
	default:
		return "none"
	}
}

// Logo is a game logo. It serialises as its plain string value.
type Logo struct {
	Kind  LogoKind
	Value string
}

// ParseLogo classifies a stored or submitted logo string.
func ParseLogo(s string) Logo {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	switch {
	case s == "":
		return Logo{}
	case strings.HasPrefix(lower, "data:"):
		return Logo{Kind: LogoInline, Value: s}
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"), strings.HasPrefix(s, "//"):
		return Logo{Kind: LogoRemote, Value: s}
	default:
		if !strings.HasPrefix(s, "/") {
			s = "/" + s
		}
		return Logo{Kind: LogoStatic, Value: s}
	}
}

// InlineLogo encodes raw image bytes as a data URI.
func InlineLogo(mime string, data []byte) Logo {
	if mime == "" {
		mime = "application/octet-stream"
	}
	return Logo{
		Kind:  LogoInline,
		Value: "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data),
	}
}

func (l Logo) String() string { return l.Value }

// IsZero reports whether no logo is set.
func (l Logo) IsZero() bool { return l.Kind == LogoNone || l.Value == "" }

// Resolve returns the logo as a client-usable reference. Static paths are
// prefixed with baseURL when one is given; other kinds are returned as-is.
func (l Logo) Resolve(baseURL string) string {
	if l.Kind != LogoStatic || baseURL == "" {
		return l.Value
	}
	return strings.TrimRight(baseURL, "/") + l.Value
}

func (l Logo) MarshalText() ([]byte, error) {
	return []byte(l.Value), nil
}

func (l *Logo) UnmarshalText(b []byte) error {
	*l = ParseLogo(string(b))
	return nil
}
