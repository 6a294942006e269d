// Command libambientbridge builds the bridge as a c-shared library. The
// exported functions form the FFI boundary: the managed-runtime caller links
// against the generated header and crosses into Go on its own threads.
//
// Build with:
//
//	go build -buildmode=c-shared -o libambientbridge.so ./cmd/libambientbridge
//
// Every fallible operation collapses failures into the boundary convention:
// handle 0 or a NULL string, with the diagnostic detail kept in the logs.
package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"encoding/json"
	"os"
	"sync"
	"unsafe"

	"github.com/frozo/ambientscribe-bridge/internal/bridge"
	"github.com/frozo/ambientscribe-bridge/internal/bridgeinfo"
	"github.com/frozo/ambientscribe-bridge/internal/config"
	"github.com/frozo/ambientscribe-bridge/internal/registry"
)

var (
	bridgeOnce    sync.Once
	defaultBridge *bridge.Bridge
)

func getBridge() *bridge.Bridge {
	bridgeOnce.Do(func() {
		cfg, err := config.Loader{}.Load()
		logger := bridge.NewLogger(os.Stderr, cfg.LogLevel)
		if err != nil {
			logger = bridge.NewLogger(os.Stderr, config.DefaultLogLevel)
			logger.Warn("configuration load failed, using defaults", "error", err)
			cfg = config.Config{}
		}
		logger.Info("bridge starting",
			"name", bridgeinfo.Info.Name,
			"slug", bridgeinfo.Info.Slug,
			"log_level", cfg.LogLevel,
		)
		defaultBridge = bridge.New(cfg, logger)
	})
	return defaultBridge
}

//export ambient_bridge_initialize_generation_model
func ambient_bridge_initialize_generation_model(path *C.char, contextLength C.int, temperature, topP C.float) C.longlong {
	handle, err := getBridge().InitializeGenerationModel(
		C.GoString(path), int(contextLength), float32(temperature), float32(topP),
	)
	if err != nil {
		return 0
	}
	return C.longlong(handle)
}

//export ambient_bridge_generate
func ambient_bridge_generate(handle C.longlong, prompt *C.char) *C.char {
	encoded, err := getBridge().Generate(registry.Handle(handle), C.GoString(prompt))
	if err != nil {
		return nil
	}
	return C.CString(encoded)
}

//export ambient_bridge_release_generation_model
func ambient_bridge_release_generation_model(handle C.longlong) {
	getBridge().ReleaseGenerationModel(registry.Handle(handle))
}

//export ambient_bridge_initialize_transcription_model
func ambient_bridge_initialize_transcription_model(path *C.char, threadCount, contextSize C.int) C.longlong {
	handle, err := getBridge().InitializeTranscriptionModel(
		C.GoString(path), int(threadCount), int(contextSize),
	)
	if err != nil {
		return 0
	}
	return C.longlong(handle)
}

//export ambient_bridge_transcribe
func ambient_bridge_transcribe(handle C.longlong, samples *C.float, sampleCount C.int, threadCount, contextSize C.int) *C.char {
	if samples == nil || sampleCount < 0 {
		return nil
	}

	// The caller owns the buffer for the call duration only; copy before the
	// shim returns so nothing retains caller memory.
	audio := make([]float32, int(sampleCount))
	if sampleCount > 0 {
		src := unsafe.Slice((*float32)(unsafe.Pointer(samples)), int(sampleCount))
		copy(audio, src)
	}

	result, err := getBridge().Transcribe(registry.Handle(handle), audio, int(threadCount), int(contextSize))
	if err != nil {
		return nil
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		return nil
	}
	return C.CString(string(encoded))
}

//export ambient_bridge_release_transcription_model
func ambient_bridge_release_transcription_model(handle C.longlong) {
	getBridge().ReleaseTranscriptionModel(registry.Handle(handle))
}

//export ambient_bridge_shutdown
func ambient_bridge_shutdown() {
	getBridge().Close()
}

//export ambient_bridge_free_string
func ambient_bridge_free_string(s *C.char) {
	C.free(unsafe.Pointer(s))
}

func main() {}
