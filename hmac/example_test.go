package hmac_test

import (
	"fmt"

	"github.com/codahale/sha2"
	"github.com/codahale/sha2/hmac"
)

func Example() {
	m, err := hmac.NewString("Jefe", sha2.SHA256)
	if err != nil {
		panic(err)
	}

	tag := m.Authenticate([]byte("what do ya want for nothing?"))
	fmt.Printf("%x\n", tag)
	fmt.Println(m.Verify([]byte("what do ya want for nothing?"), tag))

	// Output:
	// 5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843
	// true
}
