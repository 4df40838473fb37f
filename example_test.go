package utf8count_test

import (
	"fmt"

	"github.com/charlievieth/utf8count"
)

func ExampleCountScalar() {
	b := []byte("aé€")
	fmt.Println(len(b))
	fmt.Println(utf8count.CountScalar(b, len(b)))
	fmt.Println(utf8count.CountScalar(b, 3)) // "aé"
	// Output:
	// 6
	// 3
	// 2
}

func ExampleCountSWAR() {
	b := []byte("Hello, 世界! Hello, 世界!")
	fmt.Println(utf8count.CountSWAR(b, len(b)))
	fmt.Println(utf8count.CountSWAR(b, 8))
	// Output:
	// 21
	// 8
}

func ExampleCountSWAR_invalid() {
	// Bytes are not validated: stray lead bytes are counted and stray
	// continuation bytes are not.
	b := []byte("\xff\x80\x80abc")
	fmt.Println(utf8count.CountSWAR(b, len(b)))
	// Output:
	// 4
}

func ExampleRuneCountInString() {
	fmt.Println(utf8count.RuneCountInString("ΑΔΕΛΦΟΣΎΝΗΣ"))
	fmt.Println(utf8count.RuneCountInString("\U0001F600\U0001F600"))
	// Output:
	// 11
	// 2
}

func ExampleIsContinuation() {
	for _, c := range []byte("é") {
		fmt.Printf("%#02x %t\n", c, utf8count.IsContinuation(c))
	}
	// Output:
	// 0xc3 false
	// 0xa9 true
}

func ExampleLengthError() {
	defer func() {
		fmt.Println(recover())
	}()
	utf8count.CountSWAR([]byte("abc"), 4)
	// Output:
	// utf8count: CountSWAR: length 4 out of range [0:3]
}
