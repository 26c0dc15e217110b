//go:build !linux

package mpris

import "github.com/llehouerou/packetplay/internal/playback"

// Adapter does nothing outside Linux, where no MPRIS bus is available.
type Adapter struct{}

func New(playback.Service) (*Adapter, error) { return &Adapter{}, nil }

func (*Adapter) Close() error { return nil }
