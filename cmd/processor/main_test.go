package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/warp/payment-engine/ledger"
)

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestProcessFile_EndToEnd(t *testing.T) {
	// GIVEN: An input with rejections, a dispute lifecycle, and a bad row
	// WHEN: Processing it and writing the summary
	// THEN: The summary matches the expected golden output

	input := writeTempCSV(t, "input.csv",
		"type,client,tx,amount\n"+
			"deposit, 1, 1, 1.0\n"+
			"deposit, 1, 2, 2.0\n"+
			"withdrawal, 1, 3, 1.5\n"+
			"deposit, 2, 1, 10.0\n"+
			"bogus, 2, 2, 1.0\n"+
			"withdrawal, 2, 2, 50.0\n"+
			"dispute, 2, 1\n"+
			"chargeback, 2, 1\n")

	engine := ledger.NewEngine()
	if err := processFile(engine, input, false); err != nil {
		t.Fatalf("processFile: %v", err)
	}

	reports, errs := engine.Snapshots()
	if len(errs) != 0 {
		t.Fatalf("unexpected snapshot errors: %v", errs)
	}

	var out bytes.Buffer
	if err := writeSummary(&out, reports); err != nil {
		t.Fatalf("writeSummary: %v", err)
	}

	want := "client,available,held,total,locked\n" +
		"1,1.5,0,1.5,false\n" +
		"2,0,0,0,true\n"
	if out.String() != want {
		t.Errorf("summary mismatch:\ngot:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestProcessFile_TransactionsCarryAcrossFiles(t *testing.T) {
	// GIVEN: A deposit in one file and its dispute in a second
	// WHEN: Both files run through one engine
	// THEN: The dispute finds the deposit

	first := writeTempCSV(t, "first.csv",
		"type,client,tx,amount\ndeposit, 5, 9, 3.0\n")
	second := writeTempCSV(t, "second.csv",
		"type,client,tx,amount\ndispute, 5, 9\n")

	engine := ledger.NewEngine()
	for _, path := range []string{first, second} {
		if err := processFile(engine, path, false); err != nil {
			t.Fatalf("processFile(%s): %v", path, err)
		}
	}

	acct, ok := engine.Account(5)
	if !ok {
		t.Fatal("account 5 missing")
	}
	if !acct.Held().Equal(ledger.MustParseAmount("3.0")) {
		t.Errorf("held = %s, want 3.0", acct.Held())
	}
	if !acct.Available().IsZero() {
		t.Errorf("available = %s, want 0", acct.Available())
	}
}

func TestProcessFile_MissingFile(t *testing.T) {
	engine := ledger.NewEngine()
	if err := processFile(engine, filepath.Join(t.TempDir(), "nope.csv"), false); err == nil {
		t.Fatal("expected error for missing file")
	}
}
