package bot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUdevRulesHexFormatting(t *testing.T) {
	rules := udevRules(0x56a, 0xde, false)

	assert.Contains(t, rules, `ATTRS{idVendor}=="056a"`)
	assert.Contains(t, rules, `ATTRS{idProduct}=="00de"`)
	assert.Contains(t, rules, `KERNEL=="hidraw*"`)
	assert.Contains(t, rules, `SUBSYSTEM=="usb"`)
	assert.NotContains(t, rules, "LIBINPUT_IGNORE_DEVICE")
}

func TestUdevRulesLibinputOverride(t *testing.T) {
	rules := udevRules(1386, 222, true)

	assert.Contains(t, rules, `ENV{LIBINPUT_IGNORE_DEVICE}="1"`)
	assert.True(t, strings.HasSuffix(rules, `ENV{LIBINPUT_IGNORE_DEVICE}="1"`))
}

func TestUdevRulesPreamble(t *testing.T) {
	rules := udevRules(1, 1, true)

	assert.Contains(t, rules, `KERNEL=="uinput"`)
	assert.Contains(t, rules, "OpenTabletDriver Virtual Tablet")
	assert.Contains(t, rules, "# Generated by TabletBot")
}

func TestParseColour(t *testing.T) {
	c, err := parseColour("ff00ff")
	assert.NoError(t, err)
	assert.Equal(t, 0xff00ff, c)

	c, err = parseColour("#1ABC9C")
	assert.NoError(t, err)
	assert.Equal(t, 0x1abc9c, c)

	_, err = parseColour("red")
	assert.Error(t, err)

	_, err = parseColour("fff")
	assert.Error(t, err)
}
