// Command ttsgateway is the TTS dispatch gateway: it fronts a fleet of
// speech-synthesis backends behind one HTTP surface, routing requests by
// model name and aggregating backend health.
package main

func main() {
	Execute()
}
