package unsubscribe

// HeaderName is the header field carrying unsubscribe mechanisms (RFC 2369)
const HeaderName = "List-Unsubscribe"

// Status tells which of the three extraction outcomes a Result holds
type Status int

const (
	StatusAbsent Status = iota // no List-Unsubscribe header
	StatusNoURL                // header present, no accepted URL inside it
	StatusFound                // header present, URL resolved
)

func (s Status) String() string {
	switch s {
	case StatusAbsent:
		return "absent"
	case StatusNoURL:
		return "no-url"
	case StatusFound:
		return "found"
	}
	return "unknown"
}

// Result is the outcome of extracting an unsubscribe URL from one message.
// Raw is empty for StatusAbsent, URL is empty unless Status is StatusFound.
type Result struct {
	Status Status `json:"status"`
	Raw    string `json:"raw,omitempty"`
	URL    string `json:"url,omitempty"`
}
