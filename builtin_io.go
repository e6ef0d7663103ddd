// builtin_io.go — file-handle built-ins and wait
//
// open returns a small integer descriptor into the interpreter's own file
// table; descriptors start at 3 so programs cannot collide with (or close)
// the standard streams. Handles are per interpreter and are not inherited
// by anything.
package wolfera

import (
	"fmt"
	"io"
	"os"
	"time"
)

func registerIOBuiltins(ip *Interpreter) {
	ip.RegisterNative("open", []string{"path", "mode"}, []Value{Str("r")}, biOpen)
	ip.RegisterNative("read", []string{"fd"}, nil, biRead)
	ip.RegisterNative("write", []string{"fd", "data"}, nil, biWrite)
	ip.RegisterNative("close", []string{"fd"}, nil, biClose)
	ip.RegisterNative("wait", []string{"seconds"}, nil, biWait)
}

func biOpen(c *CallCtx) (Value, *Error) {
	path, err := c.strArg(0)
	if err != nil {
		return Value{}, err
	}
	mode, err := c.strArg(1)
	if err != nil {
		return Value{}, err
	}
	var flags int
	switch mode {
	case "r":
		flags = os.O_RDONLY
	case "w":
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case "a":
		flags = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	default:
		return Value{}, c.RTErr("Invalid open mode '" + mode + "', expected 'r', 'w' or 'a'")
	}
	f, oerr := os.OpenFile(path, flags, 0o644)
	if oerr != nil {
		return Value{}, c.RTErr("Could not open '" + path + "': " + oerr.Error())
	}
	fd := c.Ip.nextFD
	c.Ip.nextFD++
	c.Ip.files[fd] = f
	return Int(int64(fd)), nil
}

func (c *CallCtx) fileArg(i int) (*os.File, *Error) {
	fd, err := c.intArg(i)
	if err != nil {
		return nil, err
	}
	if fd < 3 {
		return nil, c.RTErr(fmt.Sprintf("Invalid file descriptor %d: standard streams are not accessible", fd))
	}
	f, ok := c.Ip.files[int(fd)]
	if !ok {
		return nil, c.RTErr(fmt.Sprintf("Invalid file descriptor %d", fd))
	}
	return f, nil
}

func biRead(c *CallCtx) (Value, *Error) {
	f, err := c.fileArg(0)
	if err != nil {
		return Value{}, err
	}
	data, rerr := io.ReadAll(f)
	if rerr != nil {
		return Value{}, c.RTErr("Could not read '" + f.Name() + "': " + rerr.Error())
	}
	return Str(string(data)), nil
}

func biWrite(c *CallCtx) (Value, *Error) {
	f, err := c.fileArg(0)
	if err != nil {
		return Value{}, err
	}
	data, err := c.strArg(1)
	if err != nil {
		return Value{}, err
	}
	if _, werr := f.WriteString(data); werr != nil {
		return Value{}, c.RTErr("Could not write '" + f.Name() + "': " + werr.Error())
	}
	return Null(), nil
}

func biClose(c *CallCtx) (Value, *Error) {
	f, err := c.fileArg(0)
	if err != nil {
		return Value{}, err
	}
	fd, _ := c.intArg(0)
	delete(c.Ip.files, int(fd))
	if cerr := f.Close(); cerr != nil {
		return Value{}, c.RTErr("Could not close '" + f.Name() + "': " + cerr.Error())
	}
	return Null(), nil
}

func biWait(c *CallCtx) (Value, *Error) {
	v := c.Arg(0)
	if v.Tag != VTInt && v.Tag != VTFloat {
		return Value{}, c.RTErr("Argument 1 must be Number, got " + v.TypeName())
	}
	secs := v.AsFloat()
	if secs < 0 {
		return Value{}, c.RTErr("wait duration cannot be negative")
	}
	time.Sleep(time.Duration(secs * float64(time.Second)))
	return Null(), nil
}
