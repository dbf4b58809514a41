package log

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func Test_ParseLogLevel(t *testing.T) {
	lvl, err := ParseLogLevel("debug")
	require.NoError(t, err)
	require.Equal(t, zerolog.DebugLevel, lvl)

	_, err = ParseLogLevel("shouting")
	require.Error(t, err)
}

func Test_Init_ComponentLoggers(t *testing.T) {
	Init(Options{LogLevel: zerolog.WarnLevel, Type: JSONLogger})

	require.Equal(t, zerolog.WarnLevel, Root.GetLevel())
	require.Equal(t, zerolog.WarnLevel, RPC.GetLevel())
	require.Equal(t, zerolog.WarnLevel, Scan.GetLevel())
	require.Equal(t, zerolog.WarnLevel, History.GetLevel())
	require.Equal(t, zerolog.WarnLevel, Auth.GetLevel())
}

func Test_Init_ConsoleLogger(t *testing.T) {
	Init(Options{LogLevel: zerolog.InfoLevel, Type: ConsoleLogger})
	require.Equal(t, zerolog.InfoLevel, Root.GetLevel())
}
