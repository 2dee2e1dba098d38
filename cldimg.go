// Build Cloudinary image delivery URLs
package main

import (
	"github.com/cldimg/cldimg/cmd"
	_ "github.com/cldimg/cldimg/cmd/all" // import all commands
)

func main() {
	cmd.Main()
}
