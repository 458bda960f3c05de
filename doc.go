/*
Package tuneshell is an interactive command shell meant to live inside a
device's firmware loop, talking to a dumb terminal over a serial line or
socket.

A Registry maps names to commands. Each command declares a Signature, a
string of type codes:

	d  a float64 (Double)
	u  an unsigned 64-bit integer (Unsigned), with optional 0b 0o 0x prefix
	i  a signed 64-bit integer (Signed), likewise
	s  a string (Text), either one whitespace-free token or "double quoted"
	o  not an argument: every later argument is optional

So "dus" takes a number, a count and a word, while "sod" takes a word and
then maybe a number. An optional argument that fails to parse, along with
every one after it, is passed to the command as Absent.

A math command binds a name to a live variable through an Accessor, which
Bind builds over any Go numeric pointer. Typing the name alone reports the
value; "<name> <op> <value>" changes it, with op one of add, sub, mult, div,
mod, pow or set:

	> speed
	speed = 10
	> speed mult 1.5
	speed = 15

An Editor drives a Registry from a raw byte Stream, echoing input and
handling backspace, tab completion, arrow key history recall and cursor
movement. It works out whether the terminal ends lines with CR, LF or CR LF
from the first line it sees. Editors never block; the host owns the loop,
calling Pump as input arrives.
*/
package tuneshell
