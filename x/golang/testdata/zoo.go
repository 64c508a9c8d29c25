package main

import (
	"fmt"
	"io"
)

type Speaker interface {
	Speak()
}

type Flyable interface {
	Fly()
}

type Runnable interface {
	Run()
}

// Athlete 嵌入两个接口
type Athlete interface {
	Flyable
	Runnable
}

type Empty interface{}

type Animal struct {
	Name string
}

func (a Animal) Speak() {
	fmt.Println(a.Name)
}

type Legs struct{}

func (l *Legs) Run() {}

type Dog struct {
	Animal
	*Legs
	io.Writer
	Age int
}

func (d *Dog) Fly() {}

type Cat struct {
	pet Animal
}

func (c Cat) Run() {}

type Box[T any] struct{ v T }

func (b *Box[T]) Fly() {}

func main() {
	d := &Dog{}
	d.Speak()
	func() {
		d.Fly()
	}()
	fmt.Println("done")
}

func helper(d *Dog) {
	d.Run()
}
