// cmd/avrand/main.go
//
// avrand prints random values for an Avro schema.
//
//	avrand -schema-file user.avsc -count 10 -seed 7
//	avrand -schema '{"type":"int","arg.properties":{"range":{"min":0,"max":10}}}'
//	avrand -config profile.yaml -format ocf -output users.avro
package main

import "os"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
