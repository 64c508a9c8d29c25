// Command hybrid 是混合继承练习的 Go 版本：Dog 嵌入 Animal 获得其字段与方法，
// 同时通过方法集满足 Flyable 与 Runnable 两个能力接口。
package main

import (
	"fmt"
	"io"
	"os"
)

// Flyable 表示会飞的能力
type Flyable interface {
	Fly()
}

// Runnable 表示会跑的能力
type Runnable interface {
	Run()
}

// Animal 是层次中的基类型
type Animal struct {
	Species string
	out     io.Writer
}

// NewAnimal 创建默认物种的 Animal
func NewAnimal(out io.Writer) Animal {
	return Animal{Species: "Unknown species", out: out}
}

func (a Animal) Speak() {
	fmt.Fprintln(a.out, "The animal makes a sound.")
}

// Dog 嵌入 Animal，并覆盖 Speak
type Dog struct {
	Animal
}

// NewDog 创建一只 Dog
func NewDog(out io.Writer) *Dog {
	return &Dog{Animal: NewAnimal(out)}
}

func (d *Dog) Speak() {
	fmt.Fprintln(d.out, "The dog barks.")
}

func (d *Dog) Fly() {
	fmt.Fprintln(d.out, "The dog tries to fly, but it can't.")
}

func (d *Dog) Run( {
	fmt.Fprintln(d.out, "The dog runs fast.")
}

func main() {
	dog := NewDog(os.Stdout)
	dog.Speak()
	dog.Fly()
	dog.Run()
}
