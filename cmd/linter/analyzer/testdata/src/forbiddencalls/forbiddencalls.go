package forbiddencalls

import (
	"fmt"
	"io"
	"log"
	"os"
)

type server struct{}

// A method named main is not the entry point.
func (server) main() {
	os.Exit(2) // want "os.Exit is forbidden outside main function"
}

func Shorten() {
	panic("this is forbidden") // want "panic is forbidden"
}

func Render(w io.Writer) {
	fmt.Println("rendering")        // want "fmt.Print is forbidden outside main function"
	fmt.Printf("%d links\n", 2)     // want "fmt.Print is forbidden outside main function"
	fmt.Fprintf(w, "%d links\n", 2) // No want
	_ = fmt.Sprintf("%d", 2)        // No want
}

func Fail() {
	log.Fatalf("failed: %v", "boom") // want "log.Fatal is forbidden outside main function"
	log.Println("still allowed")     // No want
}

func shadowed() {
	panic := func(string) {}
	panic("not the builtin") // No want
}

var banner = fmt.Sprint("URL Shortener")

func Announce() {
	fmt.Print(banner) // want "fmt.Print is forbidden outside main function"
}

func MultipleCalls() {
	panic("panic 1")   // want "panic is forbidden"
	log.Fatal("fatal") // want "log.Fatal is forbidden outside main function"
	os.Exit(0)         // want "os.Exit is forbidden outside main function"
}
