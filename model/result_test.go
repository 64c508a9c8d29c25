package model_test

import (
	"testing"

	"github.com/CodMac/go-treesitter-hybrid-grader/model"
	"github.com/stretchr/testify/assert"
)

func TestFacts_WriteOnce(t *testing.T) {
	f := model.NewFacts([]string{"Animal", "Dog"}, []string{"Flyable", "Runnable"}, []string{"speak", "fly"})

	assert.Equal(t, []string{"Animal", "Dog"}, f.MissingTypes([]string{"Animal", "Dog"}))

	assert.True(t, f.MarkType("Dog"))
	assert.False(t, f.MarkType("Dog"), "second mark reports no change")
	assert.False(t, f.MarkType("Cat"), "unknown names are ignored")
	assert.NotContains(t, f.TypesFound, "Cat")
	assert.Equal(t, []string{"Animal"}, f.MissingTypes([]string{"Animal", "Dog"}))

	assert.True(t, f.MarkImplements("Runnable"))
	assert.False(t, f.Implements["Flyable"])

	assert.True(t, f.MarkOverride("fly"))
	assert.Equal(t, []string{"speak"}, f.MissingOverrides([]string{"speak", "fly"}))

	f.MarkExtends()
	f.MarkInvoked()
	assert.True(t, f.Extends)
	assert.True(t, f.Invoked)
}

func TestDetectLanguage(t *testing.T) {
	lang, err := model.DetectLanguage("src/Main.JAVA")
	assert.NoError(t, err)
	assert.Equal(t, model.LangJava, lang)

	lang, err = model.DetectLanguage("cmd/main.go")
	assert.NoError(t, err)
	assert.Equal(t, model.LangGo, lang)
	assert.Equal(t, ".go", lang.FileExtension())

	_, err = model.DetectLanguage("README.md")
	assert.Error(t, err)
}

func TestOutline_FindType(t *testing.T) {
	o := &model.Outline{Types: []*model.TypeDecl{{Name: "Animal"}, {Name: "Dog"}}}

	assert.Equal(t, "Dog", o.FindType("Dog").Name)
	assert.Nil(t, o.FindType("Cat"))
}
