// Copyright (C) 2024 Temporalith, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package tserr

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestKindOfExtractsKindThroughWrapping(t *testing.T) {
	base := DivByZero("denominator touches zero at t=%d", 10)
	wrapped := fmt.Errorf("lift.Div: %w", base)

	k, ok := KindOf(wrapped)
	if !ok || k != DivisionByZero {
		t.Fatalf("expected DivisionByZero, got %v ok=%v", k, ok)
	}

	if _, ok := KindOf(errors.New("plain error")); ok {
		t.Fatalf("expected KindOf to report false for a non-tserr error")
	}
}

func TestIsMatchesOnKindNotIdentity(t *testing.T) {
	err := InvalidArg("bad period bounds")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected errors.Is to match on Kind against the sentinel")
	}
	if errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected errors.Is to not match a different Kind's sentinel")
	}
}

func TestUnwrapExposesWrappedCause(t *testing.T) {
	cause := errors.New("context deadline exceeded")
	err := Cancelledf(cause, "splice cancelled")
	if !errors.Is(err, cause) {
		t.Fatalf("expected errors.Is to reach the wrapped cause")
	}
}

func TestCheckContextNilIsNoop(t *testing.T) {
	if err := CheckContext(nil); err != nil {
		t.Fatalf("expected nil context to produce no error, got %v", err)
	}
}

func TestCheckContextDoneReturnsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := CheckContext(ctx)
	if err == nil {
		t.Fatalf("expected a Cancelled error for a done context")
	}
	k, ok := KindOf(err)
	if !ok || k != Cancelled {
		t.Fatalf("expected Cancelled kind, got %v ok=%v", k, ok)
	}
}

func TestCheckContextLiveReturnsNil(t *testing.T) {
	ctx := context.Background()
	if err := CheckContext(ctx); err != nil {
		t.Fatalf("expected a live context to produce no error, got %v", err)
	}
}

func TestKindStringsAreDistinct(t *testing.T) {
	kinds := []Kind{InvalidArgument, DivisionByZero, NotSupported, Cancelled, Internal}
	seen := map[string]bool{}
	for _, k := range kinds {
		s := k.String()
		if seen[s] {
			t.Fatalf("Kind %d produced a duplicate string %q", k, s)
		}
		seen[s] = true
	}
}
