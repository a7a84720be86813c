package extract

import (
	"testing"

	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/errors"
)

func TestParseLabelBlockZipsSections(t *testing.T) {
	seg := rawLines(
		"Funds With Monthly Distributions for Tax Purposes",
		"DECLARATION DATE: 1-Apr-25 1-May-25",
		"2-Jun-25",
		"EX-DATE/RECORD DATE: 2-Apr-25 2-May-25",
		"3-Jun-25",
		"PAY DATE: 7-Apr-25 7-May-25",
		"7-Jun-25",
	)

	triples, err := ParseLabelBlock(seg, DefaultKeep)
	if err != nil {
		t.Fatalf("ParseLabelBlock returned error: %v", err)
	}
	if len(triples) != 3 {
		t.Fatalf("got %d triples, want 3", len(triples))
	}
	want := LabelTriple{Declaration: "1-Apr-25", Ex: "2-Apr-25", Pay: "7-Apr-25"}
	if triples[0] != want {
		t.Errorf("triple 0 = %+v, want %+v", triples[0], want)
	}
	want = LabelTriple{Declaration: "2-Jun-25", Ex: "3-Jun-25", Pay: "7-Jun-25"}
	if triples[2] != want {
		t.Errorf("triple 2 = %+v, want %+v", triples[2], want)
	}
}

func TestParseLabelBlockRetentionCap(t *testing.T) {
	// Four recovered triples: the oldest is stale history the document
	// keeps for reference, only the most recent three survive.
	seg := rawLines(
		"DECLARATION DATE: 1-Jan-25 1-Apr-25 1-Jul-25 1-Oct-25",
		"EX-DATE/RECORD DATE: 2-Jan-25 2-Apr-25 2-Jul-25 2-Oct-25",
		"PAY DATE: 7-Jan-25 7-Apr-25 7-Jul-25 7-Oct-25",
	)

	triples, err := ParseLabelBlock(seg, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(triples) != 3 {
		t.Fatalf("got %d triples, want 3", len(triples))
	}
	if triples[0].Declaration != "1-Apr-25" {
		t.Errorf("oldest retained = %s, want 1-Apr-25 (1-Jan-25 discarded)", triples[0].Declaration)
	}

	// Cap disabled keeps everything.
	triples, err = ParseLabelBlock(seg, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(triples) != 4 {
		t.Errorf("with cap disabled got %d triples, want 4", len(triples))
	}
}

func TestParseLabelBlockMismatch(t *testing.T) {
	seg := rawLines(
		"DECLARATION DATE: 1-Jan-25 1-Apr-25 1-Jul-25",
		"EX-DATE/RECORD DATE: 2-Jan-25 2-Apr-25",
		"PAY DATE: 7-Jan-25 7-Apr-25 7-Jul-25",
	)

	triples, err := ParseLabelBlock(seg, DefaultKeep)
	if err == nil {
		t.Fatal("expected BlockMismatchError")
	}
	var merr *errors.BlockMismatchError
	if !errors.As(err, &merr) {
		t.Fatalf("err = %T, want *BlockMismatchError", err)
	}
	if merr.Declarations != 3 || merr.ExRecord != 2 || merr.Pay != 3 {
		t.Errorf("counts = %d/%d/%d, want 3/2/3", merr.Declarations, merr.ExRecord, merr.Pay)
	}
	if triples != nil {
		t.Error("expected no partial result on mismatch")
	}
}

func TestParseLabelBlockIgnoresTextOutsideSections(t *testing.T) {
	seg := rawLines(
		"The following funds declare monthly on 1-Jan-25", // before any label: ignored
		"DECLARATION DATE: 1-Apr-25",
		"",
		"EX-DATE/RECORD DATE: 2-Apr-25",
		"PAY DATE: 7-Apr-25",
	)
	triples, err := ParseLabelBlock(seg, DefaultKeep)
	if err != nil {
		t.Fatal(err)
	}
	if len(triples) != 1 {
		t.Fatalf("got %d triples, want 1", len(triples))
	}
}
