package telegram

import (
	"errors"
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionQuiz  = "quiz"
	actionStats = "stats"
	actionReset = "reset"
)

// Quiz sub-actions.
const (
	quizStart  = "start"
	quizAnswer = "answer"
	quizNext   = "next"
	quizStop   = "stop"
	quizPick   = "pick"
)

const (
	resetConfirm = "confirm"
	resetCancel  = "cancel"
)

// Telegram rejects callback data longer than this.
const maxCallbackDataLen = 64

var errMalformedCallback = errors.New("malformed callback data")

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// quizAnswerData is the payload of an answer button.
type quizAnswerData struct {
	SessionID     string
	QuestionIndex int
	Option        int
}

// parseQuizAnswer reads the params of "quiz:answer:<session>:<question>:<option>".
func parseQuizAnswer(params []string) (quizAnswerData, error) {
	if len(params) != 4 || params[0] != quizAnswer || params[1] == "" {
		return quizAnswerData{}, errMalformedCallback
	}
	q, err1 := strconv.Atoi(params[2])
	o, err2 := strconv.Atoi(params[3])
	if err1 != nil || err2 != nil || q < 0 || o < 0 {
		return quizAnswerData{}, errMalformedCallback
	}
	return quizAnswerData{SessionID: params[1], QuestionIndex: q, Option: o}, nil
}

// buildQuizAnswerCallback builds callback data for answering a quiz question.
func buildQuizAnswerCallback(sessionID string, questionIndex, option int) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{
			quizAnswer,
			sessionID,
			strconv.Itoa(questionIndex),
			strconv.Itoa(option),
		},
	}.encode()
}

// buildQuizNextCallback builds callback data for moving to the next question.
func buildQuizNextCallback(sessionID string) string {
	return callbackData{Action: actionQuiz, Params: []string{quizNext, sessionID}}.encode()
}

// buildQuizStopCallback builds callback data for leaving a quiz.
func buildQuizStopCallback(sessionID string) string {
	return callbackData{Action: actionQuiz, Params: []string{quizStop, sessionID}}.encode()
}

// buildQuizStartCallback builds callback data for starting a quiz in a category.
// Categories with names too long for callback data get an empty string.
func buildQuizStartCallback(category string) string {
	data := callbackData{Action: actionQuiz, Params: []string{quizStart, category}}.encode()
	if len(data) > maxCallbackDataLen || strings.Contains(category, ":") {
		return ""
	}
	return data
}

// buildQuizPickCallback builds callback data for the category picker.
func buildQuizPickCallback() string {
	return callbackData{Action: actionQuiz, Params: []string{quizPick}}.encode()
}

// buildStatsCallback builds callback data for opening the stats view.
func buildStatsCallback() string {
	return actionStats
}

func buildResetConfirmCallback() string {
	return callbackData{Action: actionReset, Params: []string{resetConfirm}}.encode()
}

func buildResetCancelCallback() string {
	return callbackData{Action: actionReset, Params: []string{resetCancel}}.encode()
}
