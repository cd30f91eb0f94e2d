package hashtron

import "encoding/json"
import "errors"

type jsonHashtron struct {
	Bits    byte        `json:"bits"`
	Program [][2]uint32 `json:"program"`
}

// MarshalJSON serializes the hashtron program and its output width
func (h Hashtron) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonHashtron{
		Bits:    h.bits,
		Program: h.program,
	})
}

// UnmarshalJSON loads a hashtron program serialized by MarshalJSON
func (h *Hashtron) UnmarshalJSON(data []byte) error {
	var j jsonHashtron
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	if len(j.Program) == 0 {
		return errors.New("hashtron: empty program")
	}
	h.program = j.Program
	h.SetBits(j.Bits)
	return nil
}
