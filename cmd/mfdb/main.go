// cmd/mfdb/main.go
package main

import (
	"mfdb/internal/app"
	"mfdb/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
