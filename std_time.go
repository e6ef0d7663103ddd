// std_time.go — the bundled native 'time' module
//
// Imported with `import time`. Exports:
//
//	time.now()      seconds since the Unix epoch, as a Float
//	time.clock()    monotonic seconds since interpreter start, as a Float
//	time.measure(f) wall-clock seconds spent calling f with no arguments
package wolfera

import "time"

func registerTimeModule(ip *Interpreter) {
	start := time.Now()
	ip.RegisterNativeModule("time", func() map[string]Value {
		return map[string]Value{
			"now": nativeVal("now", nil, nil, func(c *CallCtx) (Value, *Error) {
				return Float(float64(time.Now().UnixNano()) / float64(time.Second)), nil
			}),
			"clock": nativeVal("clock", nil, nil, func(c *CallCtx) (Value, *Error) {
				return Float(time.Since(start).Seconds()), nil
			}),
			"measure": nativeVal("measure", []string{"fn"}, nil, func(c *CallCtx) (Value, *Error) {
				fn, err := c.funcArg(0)
				if err != nil {
					return Value{}, err
				}
				began := time.Now()
				if _, cerr := c.Ip.Call(fn, nil, c.Span); cerr != nil {
					return Value{}, cerr
				}
				return Float(time.Since(began).Seconds()), nil
			}),
		}
	})
}
