package main

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"kinhal/board"
	"kinhal/core"
	"kinhal/host/serial"
)

func TestUARTTable(t *testing.T) {
	rows := uartTable(50000000, []core.BaudRate{core.Baud115200, core.Baud9600})
	if len(rows) != 2 {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[0].Divisor != (core.UARTDivisor{SBR: 27, BRFA: 4}) || rows[0].Actual != 115207 {
		t.Errorf("115200 row = %+v", rows[0])
	}
	if rows[0].ErrPct <= 0 || rows[0].ErrPct > 0.01 {
		t.Errorf("115200 error = %f%%", rows[0].ErrPct)
	}

	mean, worst, ok := errorStats(rows)
	if !ok || worst < mean || worst != max(abs(rows[0].ErrPct), abs(rows[1].ErrPct)) {
		t.Errorf("stats mean %f worst %f", mean, worst)
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func TestErrorStatsSkipsFailures(t *testing.T) {
	rows := uartTable(400000000, []core.BaudRate{core.Baud2400})
	if rows[0].Err == nil {
		t.Fatal("expected an out-of-range divisor")
	}
	if _, _, ok := errorStats(rows); ok {
		t.Error("stats over no usable rows")
	}

	var out bytes.Buffer
	printUARTTable(&out, 400000000, rows)
	if !strings.Contains(out.String(), "divisor_out_of_range") || strings.Contains(out.String(), "mean") {
		t.Errorf("output:\n%s", out.String())
	}
}

func TestSPITable(t *testing.T) {
	var out bytes.Buffer
	printSPITable(&out, 24000, []uint32{6000})
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("output:\n%s", out.String())
	}
	fields := strings.Fields(lines[1])
	want := []string{"6000", "kHz", "0", "1", "0x01", "4", "6000", "kHz"}
	if strings.Join(fields, " ") != strings.Join(want, " ") {
		t.Errorf("row = %q", fields)
	}
}

func TestPrintPlan(t *testing.T) {
	b, err := board.Preset("twr-k60")
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	printPlan(&out, b, board.Plan(b))
	s := out.String()
	for _, want := range []string{"console", "uart5", "uart1", "SBR="} {
		if !strings.Contains(s, want) {
			t.Errorf("plan output lacks %q:\n%s", want, s)
		}
	}
}

type keys struct {
	runes []rune
}

func (k *keys) NextKey() (rune, error) {
	if len(k.runes) == 0 {
		return 0, io.EOF
	}
	r := k.runes[0]
	k.runes = k.runes[1:]
	return r, nil
}

func TestForwardKeys(t *testing.T) {
	port := serial.NewLoopback()
	err := forwardKeys(&keys{runes: []rune{'h', 'é', exitKey, 'x'}}, port)
	if err != nil {
		t.Fatalf("forwardKeys: %v", err)
	}
	got := make([]byte, 8)
	n, _ := port.Read(got)
	if string(got[:n]) != "hé" {
		t.Errorf("sent %q", got[:n])
	}

	if err := forwardKeys(&keys{}, port); !errors.Is(err, io.EOF) {
		t.Errorf("closed keyboard: %v", err)
	}
}

func TestCopyPortStopsAtClose(t *testing.T) {
	port := serial.NewLoopback()
	port.Write([]byte("boot ok\r\n"))

	var out bytes.Buffer
	done := make(chan struct{})
	go func() {
		copyPort(&out, port)
		close(done)
	}()
	for port.Len() > 0 {
	}
	port.Close()
	<-done
	if out.String() != "boot ok\r\n" {
		t.Errorf("echoed %q", out.String())
	}
}

func TestCopyPortSurvivesIdleLine(t *testing.T) {
	port := serial.NewLoopback()
	pr, pw := io.Pipe()
	done := make(chan struct{})
	go func() {
		copyPort(pw, port)
		close(done)
	}()

	// every read on the idle line times out
	time.Sleep(20 * time.Millisecond)
	select {
	case <-done:
		t.Fatal("copyPort returned on an idle line")
	default:
	}

	port.Write([]byte("late"))
	got := make([]byte, 4)
	if _, err := io.ReadFull(pr, got); err != nil || string(got) != "late" {
		t.Errorf("echoed %q, %v", got, err)
	}
	port.Close()
	<-done
}
