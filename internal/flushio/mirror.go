package flushio

// Mirror returns a WriteFlusher over primary that copies everything written
// and flushed to mirror as well, e.g. a session transcript. Only primary's
// errors are returned. The first mirror error is passed to onErr, if not
// nil, and ends mirroring.
func Mirror(primary, mirror WriteFlusher, onErr func(error)) WriteFlusher {
	if mirror == nil {
		return primary
	}
	return &mirrored{primary: primary, mirror: mirror, onErr: onErr}
}

type mirrored struct {
	primary WriteFlusher
	mirror  WriteFlusher
	onErr   func(error)
}

func (m *mirrored) Write(p []byte) (int, error) {
	n, err := m.primary.Write(p)
	if n > 0 {
		m.toMirror(func(mirror WriteFlusher) error {
			_, merr := mirror.Write(p[:n])
			return merr
		})
	}
	return n, err
}

func (m *mirrored) Flush() error {
	err := m.primary.Flush()
	m.toMirror(WriteFlusher.Flush)
	return err
}

func (m *mirrored) toMirror(f func(WriteFlusher) error) {
	if m.mirror == nil {
		return
	}
	if err := f(m.mirror); err != nil {
		m.mirror = nil
		if m.onErr != nil {
			m.onErr(err)
		}
	}
}
