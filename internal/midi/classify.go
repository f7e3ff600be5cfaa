package midi

import "fmt"

// Classify renders a 3-byte message as a human string for diagnostic logs.
// Never used for control flow.
func Classify(status, data1, data2 byte) string {
	if status < 0x80 {
		return fmt.Sprintf("Data %d %d %d", status, data1, data2)
	}
	if status >= 0xF0 {
		return fmt.Sprintf("System 0x%02X", status)
	}

	channel := status&0x0F + 1
	switch status & 0xF0 {
	case 0x80:
		return fmt.Sprintf("Note Off ch%d note=%d vel=%d", channel, data1, data2)
	case 0x90:
		if data2 == 0 {
			return fmt.Sprintf("Note Off ch%d note=%d vel=0", channel, data1)
		}
		return fmt.Sprintf("Note On ch%d note=%d vel=%d", channel, data1, data2)
	case 0xA0:
		return fmt.Sprintf("Poly Pressure ch%d note=%d value=%d", channel, data1, data2)
	case 0xB0:
		return fmt.Sprintf("Control Change ch%d cc=%d value=%d", channel, data1, data2)
	case 0xC0:
		return fmt.Sprintf("Program Change ch%d program=%d", channel, data1)
	case 0xD0:
		return fmt.Sprintf("Channel Pressure ch%d value=%d", channel, data1)
	default:
		return fmt.Sprintf("Pitch Bend ch%d value=%d", channel, int(data2)<<7|int(data1))
	}
}
