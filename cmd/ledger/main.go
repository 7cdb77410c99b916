package main

import "RieperLogistics_ScanLedger/internal/cli"

func main() {
	cli.Execute()
}
