// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package simtest

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestFillRandom_replay(t *testing.T) {
	r1, r2 := rand.New(rand.NewSource(Seed)), rand.New(rand.NewSource(Seed))
	a, b := make([]bool, 20), make([]bool, 20)
	ones := 0
	for i := 0; i < 100; i++ {
		fillRandom(r1, a)
		fillRandom(r2, b)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("round %d: %v != %v", i, a, b)
		}
		for _, v := range a {
			if v {
				ones++
			}
		}
	}
	if ones == 0 || ones == 2000 {
		t.Fatalf("degenerate input values: %d ones out of 2000", ones)
	}
}
