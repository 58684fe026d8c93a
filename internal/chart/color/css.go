package color

import (
	"regexp"
	"strings"
)

var hexRegexp = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// IsHex returns true if the color is in `#rgb` or `#rrggbb` format.
func IsHex(c string) bool {
	return hexRegexp.MatchString(c)
}

// namedColors are the CSS named colors we accept on configuration.
var namedColors = map[string]struct{}{
	"black": {}, "white": {}, "gray": {}, "grey": {}, "lightgray": {}, "darkgray": {}, "silver": {},
	"red": {}, "darkred": {}, "orange": {}, "gold": {}, "yellow": {}, "chocolate": {}, "brown": {},
	"green": {}, "darkgreen": {}, "lightgreen": {}, "lime": {}, "olive": {}, "teal": {},
	"blue": {}, "darkblue": {}, "lightblue": {}, "navy": {}, "steelblue": {}, "skyblue": {},
	"purple": {}, "violet": {}, "magenta": {}, "pink": {}, "cyan": {},
}

// IsCSS returns true if the color is a hex color or a known CSS named color.
func IsCSS(c string) bool {
	if IsHex(c) {
		return true
	}
	_, ok := namedColors[strings.ToLower(c)]
	return ok
}
