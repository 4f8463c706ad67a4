package prime

import (
	"context"
	"math/big"
	"strings"
	"testing"

	"github.com/agbru/primecheck/internal/progress"
)

func TestDefaultFactory_List(t *testing.T) {
	t.Parallel()
	names := NewDefaultFactory().List()
	for _, want := range []string{"rho", "trial", "wheel"} {
		found := false
		for _, n := range names {
			if n == want {
				found = true
			}
		}
		if !found {
			t.Errorf("List() = %v, missing %q", names, want)
		}
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("List() not sorted: %v", names)
		}
	}
}

func TestDefaultFactory_Get(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()

	if _, err := f.Get("TRIAL"); err != nil {
		t.Errorf("Get is expected to be case-insensitive: %v", err)
	}
	_, err := f.Get("sieve")
	if err == nil || !strings.Contains(err.Error(), "available") {
		t.Errorf("Get(unknown) error = %v, want listing of available strategies", err)
	}
}

func TestDefaultFactory_MustGetPanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Error("MustGet(unknown) did not panic")
		}
	}()
	NewDefaultFactory().MustGet("nope")
}

func TestDefaultFactory_GetAllIsACopy(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	all := f.GetAll()
	delete(all, "trial")
	if _, err := f.Get("trial"); err != nil {
		t.Error("mutating GetAll() result affected the factory")
	}
}

func TestGlobalFactory_Singleton(t *testing.T) {
	t.Parallel()
	if GlobalFactory() != GlobalFactory() {
		t.Error("GlobalFactory returned different instances")
	}
}

func TestPrimeChecker_ReportsCompletion(t *testing.T) {
	t.Parallel()
	c := NewChecker(&TrialDivision{})
	ch := make(chan progress.ProgressUpdate, 16)

	v, err := c.Check(context.Background(), ch, 2, big.NewInt(97))
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !v.IsPrime() {
		t.Fatalf("97 reported as %v", v)
	}
	close(ch)

	var last progress.ProgressUpdate
	for u := range ch {
		last = u
	}
	if last.CheckerIndex != 2 || last.Value != 1.0 {
		t.Errorf("last update = %+v, want {2 1}", last)
	}
}

func TestPrimeChecker_NilCandidate(t *testing.T) {
	t.Parallel()
	_, err := NewChecker(&WheelDivision{}).Check(context.Background(), nil, 0, nil)
	if err != ErrNilCandidate {
		t.Errorf("err = %v, want ErrNilCandidate", err)
	}
}

func TestNewChecker_NilCorePanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Error("NewChecker(nil) did not panic")
		}
	}()
	NewChecker(nil)
}
