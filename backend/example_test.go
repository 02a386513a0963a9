package backend_test

import (
	"fmt"

	"memberlink/backend"
)

func ExampleDescriptor_Key() {
	fmt.Println(backend.SliceElement[int](3).Descriptor().Key())
	fmt.Println(backend.SliceResizer[string]().Descriptor().Key())
	fmt.Println(countField().Descriptor().Key())

	// Output:
	// CollectionElement|[]int||3
	// CollectionResizer|[]string|Size|0
	// Field|memberlink/backend_test.stats|Count|0
}
