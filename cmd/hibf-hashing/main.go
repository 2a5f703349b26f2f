// cmd/hibf-hashing/main.go
package main

import (
	"hibf-hashing/internal/app"
	"hibf-hashing/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
