package debugger

import (
	"fmt"
	"strconv"
	"strings"
)

// parseAddress converts a register address in any of the common notations
// ($12, 0x12, 18) into a register number
func parseAddress(address string) (uint8, error) {
	if strings.HasPrefix(address, "$") {
		address = fmt.Sprintf("0x%s", address[1:])
	}

	addr, err := strconv.ParseUint(address, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("address is not valid: %s", address)
	}

	return uint8(addr), nil
}

// parseValue converts a register value in any of the common notations into a
// byte
func parseValue(value string) (uint8, error) {
	if strings.HasPrefix(value, "$") {
		value = fmt.Sprintf("0x%s", value[1:])
	}

	v, err := strconv.ParseUint(value, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("value is not valid: %s", value)
	}

	return uint8(v), nil
}
