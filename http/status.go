package http

import "strconv"

type Status uint16

const (
	StatusOK      Status = 200 // RFC 7231, 6.3.1
	StatusCreated Status = 201 // RFC 7231, 6.3.2

	StatusBadRequest Status = 400 // RFC 7231, 6.5.1
	StatusNotFound   Status = 404 // RFC 7231, 6.5.4

	StatusInternalServerError Status = 500 // RFC 7231, 6.6.1
)

var (
	unknownStatusCode = "Unknown Status Code"

	statusMessages = map[Status]string{
		StatusOK:      "OK",
		StatusCreated: "Created",

		StatusBadRequest: "Bad Request",
		StatusNotFound:   "Not Found",

		StatusInternalServerError: "Internal Server Error",
	}
)

func (s Status) Reason() string {
	if msg, ok := statusMessages[s]; ok {
		return msg
	}
	return unknownStatusCode
}

func (s Status) Valid() bool {
	_, ok := statusMessages[s]
	return ok
}

// String renders the code and reason the way the status line carries them.
func (s Status) String() string {
	return strconv.Itoa(int(s)) + " " + s.Reason()
}
