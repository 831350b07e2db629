package reference

import (
	"fmt"
	"strings"
)

// Kind is the closed set of resource kinds. Variable kinds resolve to a
// literal value from a value store; media kinds resolve to a file.
type Kind uint8

const (
	String Kind = iota + 1
	Text
	Color
	Dimen
	Style
	Link
	Tip
	Image
	Audio
	Video
)

var kindNames = map[Kind]string{
	String: "string",
	Text:   "text",
	Color:  "color",
	Dimen:  "dimen",
	Style:  "style",
	Link:   "link",
	Tip:    "tip",
	Image:  "image",
	Audio:  "audio",
	Video:  "video",
}

// kindAliases are accepted spellings that are not canonical.
var kindAliases = map[string]Kind{
	"dimension": Dimen,
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	return []Kind{String, Text, Color, Dimen, Style, Link, Tip, Image, Audio, Video}
}

// ParseKind matches a kind name, case insensitively.
func ParseKind(name string) (Kind, bool) {
	lower := strings.ToLower(name)
	for k, n := range kindNames {
		if n == lower {
			return k, true
		}
	}
	k, ok := kindAliases[lower]
	return k, ok
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// IsVariable reports whether k resolves through the value stores.
func (k Kind) IsVariable() bool {
	switch k {
	case String, Text, Color, Dimen, Style, Link, Tip:
		return true
	case Image, Audio, Video:
		return false
	default:
		panic(fmt.Sprintf("reference: unknown kind %d", uint8(k)))
	}
}

// IsMedia reports whether k resolves to a media file.
func (k Kind) IsMedia() bool {
	return !k.IsVariable()
}

// Extensions lists the file extensions a media kind resolves to. Variable
// kinds have none.
func (k Kind) Extensions() []string {
	switch k {
	case Image:
		return []string{"png", "jpg", "jpeg", "gif", "svg", "webp", "ico", "bmp"}
	case Audio:
		return []string{"mp3", "ogg", "wav"}
	case Video:
		return []string{"mp4", "webm", "ogv", "avi"}
	case String, Text, Color, Dimen, Style, Link, Tip:
		return nil
	default:
		panic(fmt.Sprintf("reference: unknown kind %d", uint8(k)))
	}
}
