package cron

import (
	"testing"
)

func TestRegistry_Register_Jobs(t *testing.T) {
	var gotArgs []string
	Register("stocksnapshot", "@every 30m", func(args ...string) {
		gotArgs = args
	})
	defer Unregister("stocksnapshot")

	jobs := Jobs()
	j, ok := jobs["stocksnapshot"]
	if !ok {
		t.Fatal("stocksnapshot not in Jobs()")
	}
	if j.Schedule != "@every 30m" {
		t.Errorf("Schedule = %q, want @every 30m", j.Schedule)
	}
	j.Run("manual")
	if len(gotArgs) != 1 || gotArgs[0] != "manual" {
		t.Errorf("Run args = %v", gotArgs)
	}
}

func TestRegistry_Register_DuplicatePanics(t *testing.T) {
	Register("sweepdup", "@hourly", func(...string) {})
	defer Unregister("sweepdup")
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on duplicate")
		}
	}()
	Register("sweepdup", "@daily", func(...string) {})
}

func TestRegistry_Unregister(t *testing.T) {
	Register("onceonly", "@daily", func(...string) {})
	Unregister("onceonly")
	// Unregister reopens the registry, so the name is free again
	Register("onceonly", "@hourly", func(...string) {})
	Unregister("onceonly")
	// Jobs() locks the registry, so it comes last
	if _, ok := Jobs()["onceonly"]; ok {
		t.Error("onceonly still registered after Unregister")
	}
}
