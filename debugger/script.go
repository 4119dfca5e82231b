package debugger

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jetsetilly/testym/hardware/ym2151"
)

// a script is a list of register writes interleaved with waits. each line of
// the script file is one of:
//
//	# comment
//	wait <frames>
//	<address> <data>
//
// addresses and data can be in decimal, $hex or 0xhex notation. writes go
// through the bus interface and are subject to the usual busy handling
func (m *debugger) playFromFile(scriptfile string) error {
	f, err := os.ReadFile(scriptfile)
	if err != nil {
		return fmt.Errorf("cannot load script: %s", scriptfile)
	}

	lines := strings.Split(string(f), "\n")

	for i, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}

		p := strings.Fields(l)

		if strings.EqualFold(p[0], "wait") {
			n := 1
			if len(p) > 1 {
				n, err = strconv.Atoi(p[1])
				if err != nil || n < 1 {
					return fmt.Errorf("line %d: bad wait count: %s", i+1, p[1])
				}
			}
			for range n {
				err = m.console.Step()
				if err != nil {
					return err
				}
			}
			continue
		}

		if len(p) != 2 {
			return fmt.Errorf("line %d: expected address and data", i+1)
		}

		addr, err := parseAddress(p[0])
		if err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
		data, err := parseValue(p[1])
		if err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}

		m.console.WithChip(func(ym *ym2151.YM2151) {
			ym.Write(false, addr)
			ym.Write(true, data)
		})
	}

	return nil
}
