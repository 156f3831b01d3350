package store

// Device is a library row identifying a remote by manufacturer and model.
type Device struct {
	ID           string `json:"id"`
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	Protocol     string `json:"protocol"`
}

// Code is a named IR code belonging to a device.
type Code struct {
	ID         string `json:"id"`
	DeviceID   string `json:"device_id"`
	Name       string `json:"name"`
	Protocol   string `json:"protocol"`
	Code       string `json:"code"`
	SignalHash string `json:"signal_hash"`
}
