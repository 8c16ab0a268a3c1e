package middleware

import (
	"time"

	"go.uber.org/zap"

	"github.com/dzonerzy/go-optparse/optparse"
)

// Logger traces every invocation of the wrapped callback. Successful calls
// are logged at debug level, failures at warn level.
func Logger(l *zap.Logger) Middleware {
	if l == nil {
		l = zap.NewNop()
	}
	return func(next optparse.CallbackFunc) optparse.CallbackFunc {
		return func(c *optparse.CallbackContext) error {
			fields := []zap.Field{zap.String("spelling", spellingOf(c))}
			if c != nil {
				fields = append(fields, zap.Any("value", c.Value))
				if dest, ok := c.Dest(); ok {
					fields = append(fields, zap.String("dest", dest))
				}
			}

			start := time.Now()
			err := next(c)
			fields = append(fields, zap.Duration("duration", time.Since(start)))

			if err != nil {
				l.Warn("callback failed", append(fields, zap.Error(err))...)
				return err
			}
			l.Debug("callback", fields...)
			return nil
		}
	}
}
