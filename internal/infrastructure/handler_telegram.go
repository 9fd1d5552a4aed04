package infrastructure

import (
	"regexp"

	"github.com/yourusername/mediagrab/internal/domain"
)

// Message URL shapes: private /c/ links, the /s/ embed form, then public
// channel posts. Channel usernames are at least five characters, which
// keeps the reserved /c/ and /s/ segments out of the public shape.
var telegramShapes = []urlShape{
	{pattern: regexp.MustCompile(`^https?://t\.me/c/\d+/(\d+)`), idGroup: 1},
	{pattern: regexp.MustCompile(`^https?://t\.me/s/[A-Za-z0-9_]{5,}/(\d+)`), idGroup: 1},
	{pattern: regexp.MustCompile(`^https?://t\.me/[A-Za-z0-9_]{5,}/(\d+)`), idGroup: 1},
}

var telegramDomains = []string{"t.me"}

// TelegramHandler handles public Telegram channel post URLs. The media id
// is the numeric message id.
type TelegramHandler struct{}

// NewTelegramHandler creates a Telegram handler.
func NewTelegramHandler() domain.Handler {
	return &TelegramHandler{}
}

func (h *TelegramHandler) Descriptor() domain.Descriptor {
	return domain.Descriptor{
		Name:             "telegram",
		SupportedDomains: telegramDomains,
	}
}

func (h *TelegramHandler) ValidateURL(rawURL string) bool {
	return matchAny(rawURL, telegramShapes)
}

func (h *TelegramHandler) ExtractMediaID(rawURL string) (string, bool) {
	return matchID(rawURL, telegramShapes)
}

// SupportsURL overrides the default domain sniffing with a stricter rule:
// t.me links without a message id (bare channel or invite links) are not
// claimed, since they never point at a single downloadable item.
func (h *TelegramHandler) SupportsURL(rawURL string) bool {
	return matchAny(rawURL, telegramShapes)
}

func (h *TelegramHandler) FetchOptions() map[string]string {
	return map[string]string{
		domain.OptionFormat: "best",
	}
}
