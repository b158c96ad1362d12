package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuantity(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		qty     int
		cleaned string
		found   bool
	}{
		{
			name:    "colon separator",
			text:    "XL:3",
			qty:     3,
			cleaned: "XL",
			found:   true,
		},
		{
			name:    "star separator",
			text:    "均码*12",
			qty:     12,
			cleaned: "均码",
			found:   true,
		},
		{
			name:    "spaces around separator",
			text:    "XL : 5",
			qty:     5,
			cleaned: "XL",
			found:   true,
		},
		{
			name:    "rightmost separator wins",
			text:    "XL:2:7",
			qty:     7,
			cleaned: "XL:2",
			found:   true,
		},
		{
			name:    "separator without digits",
			text:    "XL:大号",
			qty:     0,
			cleaned: "XL:大号",
			found:   false,
		},
		{
			name:    "no separator",
			text:    "均码",
			qty:     0,
			cleaned: "均码",
			found:   false,
		},
		{
			name:    "trailing text after digits ignored",
			text:    "XL*3件",
			qty:     3,
			cleaned: "XL",
			found:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qty, cleaned, found := Quantity(tt.text)
			assert.Equal(t, tt.qty, qty)
			assert.Equal(t, tt.cleaned, cleaned)
			assert.Equal(t, tt.found, found)
		})
	}
}
