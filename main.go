package main

import "github.com/frahmantamala/payment-gateway/cmd"

func main() {
	cmd.Execute()
}
