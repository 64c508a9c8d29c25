package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDog_OverridesSpeak(t *testing.T) {
	var buf bytes.Buffer
	dog := NewDog(&buf)

	dog.Speak()
	dog.Animal.Speak()

	assert.Equal(t, "The dog barks.\nThe animal makes a sound.\n", buf.String())
	assert.Equal(t, "Unknown species", dog.Species)
}

func TestDog_Capabilities(t *testing.T) {
	var buf bytes.Buffer
	dog := NewDog(&buf)

	var (
		f Flyable  = dog
		r Runnable = dog
	)
	f.Fly()
	r.Run()

	assert.Equal(t, "The dog tries to fly, but it can't.\nThe dog runs fast.\n", buf.String())
}
