package main

import (
	"testing"

	"artbridge/internal/artset"
)

func TestParseByteArg(t *testing.T) {
	cases := []struct {
		arg     string
		max     uint64
		want    byte
		wantErr bool
	}{
		{arg: "144", max: 255, want: 144},
		{arg: "0x90", max: 255, want: 0x90},
		{arg: "127", max: 127, want: 127},
		{arg: "128", max: 127, wantErr: true},
		{arg: "256", max: 255, wantErr: true},
		{arg: "-1", max: 255, wantErr: true},
		{arg: "abc", max: 255, wantErr: true},
		{arg: "", max: 255, wantErr: true},
	}
	for _, tc := range cases {
		got, err := parseByteArg(tc.arg, tc.max)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseByteArg(%q) succeeded, want error", tc.arg)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseByteArg(%q): %v", tc.arg, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseByteArg(%q) = %d, want %d", tc.arg, got, tc.want)
		}
	}
}

func TestFormatTrigger(t *testing.T) {
	cases := []struct {
		trigger artset.Trigger
		want    string
	}{
		{artset.Trigger{Status: 0x90, Data1: 24, Data2: 127}, "note 24 vel 127"},
		{artset.Trigger{Status: 0xB0, Data1: 32, Data2: 3}, "cc 32=3"},
		{artset.Trigger{Status: 0xC0, Data1: 5}, "program 5"},
		{artset.Trigger{Status: 0xE0, Data1: 0, Data2: 64}, "0xE0 0 64"},
	}
	for _, tc := range cases {
		if got := formatTrigger(tc.trigger); got != tc.want {
			t.Errorf("formatTrigger(%+v) = %q, want %q", tc.trigger, got, tc.want)
		}
	}
}

func TestFormatRemote(t *testing.T) {
	if got := formatRemote(nil); got != "-" {
		t.Errorf("formatRemote(nil) = %q, want -", got)
	}
	manual := &artset.RemoteTrigger{Status: 0x90, Data1: 12}
	if got := formatRemote(manual); got != "note 12" {
		t.Errorf("formatRemote(manual) = %q, want %q", got, "note 12")
	}
	auto := &artset.RemoteTrigger{Status: 0x90, Data1: 13, AutoAssigned: true}
	if got := formatRemote(auto); got != "note 13 (auto)" {
		t.Errorf("formatRemote(auto) = %q, want %q", got, "note 13 (auto)")
	}
}

func TestParseTriggerArgs(t *testing.T) {
	trigger, err := parseTriggerArgs([]string{"0x90", "60", "127"})
	if err != nil {
		t.Fatalf("parseTriggerArgs: %v", err)
	}
	if trigger != (artset.Trigger{Status: 0x90, Data1: 60, Data2: 127}) {
		t.Errorf("trigger = %+v", trigger)
	}

	trigger, err = parseTriggerArgs([]string{"0xC0", "5"})
	if err != nil {
		t.Fatalf("parseTriggerArgs two args: %v", err)
	}
	if trigger.Data2 != 0 {
		t.Errorf("Data2 = %d, want 0", trigger.Data2)
	}

	if _, err := parseTriggerArgs([]string{"0x90", "200", "0"}); err == nil {
		t.Error("out-of-range data1 accepted")
	}
}
