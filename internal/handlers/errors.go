package handlers

import (
	"log"
	"net/http"
)

// respondWithError replies with a plain-text status message for the user
// and logs the underlying error under logMsg. Handlers reserve it for
// failures the page itself can't explain; expected outcomes (a duplicate
// term, a too-small folder) re-render their view with an inline message
// instead.
func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	http.Error(w, userMsg, status)
}
