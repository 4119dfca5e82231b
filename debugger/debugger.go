package debugger

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/jetsetilly/testym/hardware"
	"github.com/jetsetilly/testym/hardware/ym2151"
	"github.com/jetsetilly/testym/logger"
	"github.com/jetsetilly/testym/ui"
	"github.com/jetsetilly/testym/version"
	"github.com/jetsetilly/testym/wavwriter"
)

type input struct {
	s   string
	err error
}

type debugger struct {
	audioQuit chan bool
	sig       chan os.Signal
	input     chan input

	console *hardware.Console

	// the sample rate of the host audio device. also the default rate for WAV
	// capture
	rate int

	// script of commands to play on startup
	script string

	// printing styles
	styles styles
}

func (m *debugger) reset() {
	m.console.Reset()
	fmt.Println(m.styles.debugger.Render("console reset"))

	if m.script != "" {
		fmt.Println(m.styles.debugger.Render(
			fmt.Sprintf("playing %s", m.script),
		))
		err := m.playFromFile(m.script)
		if err != nil {
			fmt.Println(m.styles.err.Render(err.Error()))
			m.script = ""
		}
	}

	m.console.WithChip(func(ym *ym2151.YM2151) {
		fmt.Println(m.styles.chip.Render(ym.String()))
	})
}

// step advances the emulation by the given number of frames
//
// returns true if quit signal has been received
func (m *debugger) step(frames int) bool {
	for range frames {
		select {
		case <-m.sig:
			return false
		case <-m.audioQuit:
			return true
		default:
		}

		err := m.console.Step()
		if err != nil {
			fmt.Println(m.styles.err.Render(err.Error()))
			return false
		}
	}

	m.console.WithChip(func(ym *ym2151.YM2151) {
		fmt.Println(m.styles.chip.Render(ym.String()))
	})

	return false
}

// returns true if quit signal has been received
func (m *debugger) run() bool {
	fmt.Println(m.styles.debugger.Render("emulation running"))

	// we measure the number of frames in the time period of the running emulation
	var frameCt int
	var startTime time.Time

	var (
		endRunErr = errors.New("end run")
		quitErr   = errors.New("quit")
	)

	stop := make(chan bool, 1)

	// hook is called after every frame
	hook := func() error {
		select {
		case <-m.sig:
			return endRunErr
		case <-m.audioQuit:
			return quitErr
		default:
		}

		frameCt++
		return nil
	}

	startTime = time.Now()

	err := m.console.Run(stop, hook)

	if errors.Is(err, quitErr) {
		return true
	}

	if errors.Is(err, endRunErr) {
		fmt.Println(m.styles.debugger.Render(
			fmt.Sprintf("%d frames in %.02f seconds", frameCt, time.Since(startTime).Seconds())),
		)
	} else if err != nil {
		fmt.Println(m.styles.err.Render(err.Error()))
	}

	m.console.WithChip(func(ym *ym2151.YM2151) {
		fmt.Println(m.styles.chip.Render(ym.String()))
	})

	return false
}

// dump the register mirror in rows of sixteen
func (m *debugger) registers() {
	var regs [256]uint8
	m.console.WithChip(func(ym *ym2151.YM2151) {
		regs = ym.Registers()
	})

	var s strings.Builder
	for i, d := range regs {
		if i%16 == 0 {
			if i > 0 {
				s.WriteString("\n")
			}
			s.WriteString(fmt.Sprintf("%02x:", i))
		}
		s.WriteString(fmt.Sprintf(" %02x", d))
	}
	fmt.Println(m.styles.regs.Render(s.String()))
}

func (m *debugger) voiceStatus(voice uint8) {
	m.console.WithChip(func(ym *ym2151.YM2151) {
		var s strings.Builder
		s.WriteString(fmt.Sprintf("voice %d: ", voice))
		s.WriteString(fmt.Sprintf("conn=%d fb=%d ", ym.VoiceConnectionType(voice), ym.VoiceSelfFeedbackLevel(voice)))
		s.WriteString(fmt.Sprintf("oct=%d note=%d kf=%d ", ym.VoiceOctave(voice), ym.VoiceNote(voice), ym.VoiceKeyFraction(voice)))
		s.WriteString(fmt.Sprintf("pms=%d ams=%d ", ym.VoicePMS(voice), ym.VoiceAMS(voice)))
		s.WriteString(fmt.Sprintf("left=%d right=%d", ym.VoiceLeftEnable(voice), ym.VoiceRightEnable(voice)))
		for op := uint8(0); op < ym2151.NumOperators; op++ {
			s.WriteString(fmt.Sprintf("\n  op %d: ", op))
			s.WriteString(fmt.Sprintf("mul=%d dt1=%d dt2=%d tl=%d ", ym.OperatorPhaseMultiply(voice, op),
				ym.OperatorDetune1(voice, op), ym.OperatorDetune2(voice, op), ym.OperatorTotalLevel(voice, op)))
			s.WriteString(fmt.Sprintf("ks=%d ar=%d d1r=%d d1l=%d d2r=%d rr=%d amsen=%d",
				ym.OperatorKeyScaling(voice, op), ym.OperatorAttackRate(voice, op),
				ym.OperatorDecayRate1(voice, op), ym.OperatorDecay1Level(voice, op),
				ym.OperatorDecayRate2(voice, op), ym.OperatorReleaseRate(voice, op),
				ym.OperatorAMSEnabled(voice, op)))
		}
		fmt.Println(m.styles.voice.Render(s.String()))
	})
}

// capture the given number of seconds of audio to a WAV file. samples are
// generated on demand so the capture is quicker than real time
func (m *debugger) capture(filename string, seconds int) error {
	aw, err := wavwriter.New(filename, m.rate)
	if err != nil {
		return err
	}

	const chunk = 1024
	buf := make([]int16, chunk*2)

	m.console.WithChip(func(ym *ym2151.YM2151) {
		remaining := seconds * m.rate
		for remaining > 0 {
			n := min(remaining, chunk)
			ym.Render(buf[:n*2], n, m.rate)
			err = aw.SetAudio(buf[:n*2])
			if err != nil {
				return
			}
			remaining -= n
		}
	})
	if err != nil {
		return err
	}

	return aw.EndMixing()
}

func (m *debugger) loop() {
	for {
		fmt.Print("> ")

		var cmd []string

		select {
		case input := <-m.input:
			if input.err != nil {
				fmt.Println(m.styles.err.Render(input.err.Error()))
				return
			}
			cmd = strings.Fields(input.s)
			if len(cmd) == 0 {
				cmd = []string{"STEP"}
			}
		case <-m.sig:
			fmt.Print("\r")
			return
		case <-m.audioQuit:
			fmt.Print("\n")
			return
		}

		switch strings.ToUpper(cmd[0]) {
		case "R", "RUN":
			if m.run() {
				return
			}
		case "ST", "STEP":
			frames := 1
			if len(cmd) > 1 {
				var err error
				frames, err = strconv.Atoi(cmd[1])
				if err != nil || frames < 1 {
					fmt.Println(m.styles.err.Render(
						fmt.Sprintf("cannot use STEP %s", cmd[1]),
					))
					break // switch
				}
			}
			if m.step(frames) {
				return
			}
		case "RESET":
			m.reset()
		case "YM", "STATUS":
			m.console.WithChip(func(ym *ym2151.YM2151) {
				fmt.Println(m.styles.chip.Render(ym.String()))
			})
		case "REGS":
			m.registers()
		case "VOICE":
			if len(cmd) < 2 {
				fmt.Println(m.styles.err.Render("VOICE requires a voice number"))
				break // switch
			}
			v, err := parseValue(cmd[1])
			if err != nil || v >= ym2151.NumVoices {
				fmt.Println(m.styles.err.Render(
					fmt.Sprintf("bad voice number: %s", cmd[1]),
				))
				break // switch
			}
			m.voiceStatus(v)
		case "SET":
			if len(cmd) < 2 {
				fmt.Println(m.styles.err.Render(
					fmt.Sprintf("SET requires a field name: %s", fieldNames()),
				))
				break // switch
			}
			f, voice, op, rem, err := parseFieldArgs(cmd[1:])
			if err != nil {
				fmt.Println(m.styles.err.Render(err.Error()))
				break // switch
			}
			if len(rem) != 1 {
				fmt.Println(m.styles.err.Render("SET requires a value"))
				break // switch
			}
			val, err := parseValue(rem[0])
			if err != nil {
				fmt.Println(m.styles.err.Render(err.Error()))
				break // switch
			}
			m.console.WithChip(func(ym *ym2151.YM2151) {
				f.set(ym, voice, op, val)
				fmt.Println(m.styles.regs.Render(
					fmt.Sprintf("%s = %d", strings.ToLower(cmd[1]), f.get(ym, voice, op)),
				))
			})
		case "GET":
			if len(cmd) < 2 {
				fmt.Println(m.styles.err.Render(
					fmt.Sprintf("GET requires a field name: %s", fieldNames()),
				))
				break // switch
			}
			f, voice, op, rem, err := parseFieldArgs(cmd[1:])
			if err != nil {
				fmt.Println(m.styles.err.Render(err.Error()))
				break // switch
			}
			if len(rem) != 0 {
				fmt.Println(m.styles.err.Render("too many arguments to GET command"))
				break // switch
			}
			m.console.WithChip(func(ym *ym2151.YM2151) {
				fmt.Println(m.styles.regs.Render(
					fmt.Sprintf("%s = %d", strings.ToLower(cmd[1]), f.get(ym, voice, op)),
				))
			})
		case "KEYON", "KEYOFF":
			if len(cmd) < 2 {
				fmt.Println(m.styles.err.Render(
					fmt.Sprintf("%s requires a voice number", strings.ToUpper(cmd[0])),
				))
				break // switch
			}
			v, err := parseValue(cmd[1])
			if err != nil || v >= ym2151.NumVoices {
				fmt.Println(m.styles.err.Render(
					fmt.Sprintf("bad voice number: %s", cmd[1]),
				))
				break // switch
			}
			on := strings.ToUpper(cmd[0]) == "KEYON"
			m.console.WithChip(func(ym *ym2151.YM2151) {
				ym.KeyOn(v, on, on, on, on)
			})
		case "WRITE":
			// write through the bus interface, subject to busy handling
			if len(cmd) < 3 {
				fmt.Println(m.styles.err.Render("WRITE requires an address and a value"))
				break // switch
			}
			addr, err := parseAddress(cmd[1])
			if err != nil {
				fmt.Println(m.styles.err.Render(err.Error()))
				break // switch
			}
			data, err := parseValue(cmd[2])
			if err != nil {
				fmt.Println(m.styles.err.Render(err.Error()))
				break // switch
			}
			m.console.WithChip(func(ym *ym2151.YM2151) {
				ym.Write(false, addr)
				ym.Write(true, data)
			})
		case "POKE":
			// write through the debugging path, bypassing busy handling
			if len(cmd) < 3 {
				fmt.Println(m.styles.err.Render("POKE requires an address and a value"))
				break // switch
			}
			addr, err := parseAddress(cmd[1])
			if err != nil {
				fmt.Println(m.styles.err.Render(err.Error()))
				break // switch
			}
			data, err := parseValue(cmd[2])
			if err != nil {
				fmt.Println(m.styles.err.Render(err.Error()))
				break // switch
			}
			m.console.WithChip(func(ym *ym2151.YM2151) {
				ym.DebugWrite(addr, data)
			})
		case "PEEK":
			if len(cmd) < 2 {
				fmt.Println(m.styles.err.Render("PEEK requires an address"))
				break // switch
			}
			addr, err := parseAddress(cmd[1])
			if err != nil {
				fmt.Println(m.styles.err.Render(err.Error()))
				break // switch
			}
			m.console.WithChip(func(ym *ym2151.YM2151) {
				fmt.Println(m.styles.regs.Render(
					fmt.Sprintf("$%02x = %02x", addr, ym.DebugRead(addr)),
				))
			})
		case "STRICT":
			m.console.WithChip(func(ym *ym2151.YM2151) {
				if len(cmd) > 1 {
					switch strings.ToUpper(cmd[1]) {
					case "ON":
						ym.SetStrict(true)
					case "OFF":
						ym.SetStrict(false)
					default:
						fmt.Println(m.styles.err.Render(
							fmt.Sprintf("unrecognised argument for STRICT command: %s", cmd[1]),
						))
						return
					}
				}
				fmt.Println(m.styles.debugger.Render(
					fmt.Sprintf("strict timing: %v", ym.Strict()),
				))
			})
		case "IRQ":
			m.console.WithChip(func(ym *ym2151.YM2151) {
				if len(cmd) > 1 {
					switch strings.ToUpper(cmd[1]) {
					case "ON":
						ym.SetIRQEnabled(true)
					case "OFF":
						ym.SetIRQEnabled(false)
					default:
						fmt.Println(m.styles.err.Render(
							fmt.Sprintf("unrecognised argument for IRQ command: %s", cmd[1]),
						))
						return
					}
				}
				fmt.Println(m.styles.debugger.Render(
					fmt.Sprintf("irq enabled: %v asserted: %v", ym.IRQEnabled(), ym.IRQ()),
				))
			})
		case "PLAY":
			if len(cmd) < 2 {
				fmt.Println(m.styles.err.Render("PLAY requires a script file"))
				break // switch
			}
			err := m.playFromFile(cmd[1])
			if err != nil {
				fmt.Println(m.styles.err.Render(err.Error()))
			}
		case "WAV":
			if len(cmd) < 3 {
				fmt.Println(m.styles.err.Render("WAV requires a filename and a duration in seconds"))
				break // switch
			}
			seconds, err := strconv.Atoi(cmd[2])
			if err != nil || seconds < 1 {
				fmt.Println(m.styles.err.Render(
					fmt.Sprintf("bad duration: %s", cmd[2]),
				))
				break // switch
			}
			err = m.capture(cmd[1], seconds)
			if err != nil {
				fmt.Println(m.styles.err.Render(err.Error()))
			}
		case "LOG":
			logger.Tail(os.Stdout, -1)
		case "QUIT":
			return
		default:
			fmt.Println(m.styles.err.Render(
				fmt.Sprintf("unrecognised command: %s", strings.Join(cmd, " ")),
			))
		}
	}
}

func Launch(audioQuit chan bool, u *ui.UI, args []string) error {
	var script string
	var strict bool
	var rate int
	var profile bool

	flgs := flag.NewFlagSet(version.ApplicationName, flag.ExitOnError)
	flgs.BoolVar(&strict, "strict", false, "drop writes made during the busy window")
	flgs.IntVar(&rate, "rate", hardware.HostSampleRate, "sample rate of the host audio device")
	flgs.BoolVar(&profile, "profile", false, "create CPU profile for emulator")
	err := flgs.Parse(args)
	if err != nil {
		return err
	}
	args = flgs.Args()

	if len(args) == 1 {
		script = args[0]
	} else if len(args) > 1 {
		return fmt.Errorf("too many arguments to debugger")
	}

	m := &debugger{
		audioQuit: audioQuit,
		sig:       make(chan os.Signal, 1),
		input:     make(chan input, 1),
		rate:      rate,
		script:    script,
		styles:    newStyles(),
	}
	m.console = hardware.Create(u, rate)

	m.console.WithChip(func(ym *ym2151.YM2151) {
		ym.SetStrict(strict)
	})

	fmt.Println(m.styles.debugger.Render(
		fmt.Sprintf("%s [%s]", version.ApplicationName, version.Revision()),
	))

	signal.Notify(m.sig, syscall.SIGINT)

	go func() {
		r := bufio.NewReader(os.Stdin)
		b := make([]byte, 256)
		for {
			n, err := r.Read(b)
			select {
			case m.input <- input{
				s:   strings.TrimSpace(string(b[:n])),
				err: err,
			}:
			default:
			}
		}
	}()

	m.reset()

	if profile {
		f, err := os.Create("cpu.profile")
		if err != nil {
			return fmt.Errorf("performance: %w", err)
		}
		defer func() {
			err := f.Close()
			if err != nil {
				logger.Log(logger.Allow, "performance", err.Error())
			}
		}()

		err = pprof.StartCPUProfile(f)
		if err != nil {
			return fmt.Errorf("performance: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	m.loop()

	return nil
}
