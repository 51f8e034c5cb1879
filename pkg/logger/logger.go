package logger

import (
	"go.uber.org/zap"
)

// Init builds the process logger and installs it as zap's global.
func Init(mode string) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if mode == "release" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(l)
	return l, nil
}
