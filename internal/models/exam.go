package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ExamKind string

const (
	ExamReading   ExamKind = "reading"
	ExamWriting   ExamKind = "writing"
	ExamListening ExamKind = "listening"
	ExamSpeaking  ExamKind = "speaking"
	ExamImage     ExamKind = "image"
)

var ExamKinds = []ExamKind{ExamReading, ExamWriting, ExamListening, ExamSpeaking, ExamImage}

func (k ExamKind) Valid() bool {
	for _, kind := range ExamKinds {
		if kind == k {
			return true
		}
	}
	return false
}

// ModelName es el valor de testModelName en History.
func (k ExamKind) ModelName() string {
	switch k {
	case ExamReading:
		return "TCFReading"
	case ExamWriting:
		return "TCFWriting"
	case ExamListening:
		return "TCFListening"
	case ExamSpeaking:
		return "TCFSpeaking"
	case ExamImage:
		return "ImageExam"
	}
	return ""
}

func (k ExamKind) Collection() string {
	switch k {
	case ExamReading:
		return "tcf_reading"
	case ExamWriting:
		return "tcf_writing"
	case ExamListening:
		return "tcf_listening"
	case ExamSpeaking:
		return "tcf_speaking"
	case ExamImage:
		return "image_exams"
	}
	return ""
}

// Objective: se corrige comparando la opción elegida.
func (k ExamKind) Objective() bool {
	return k == ExamReading || k == ExamListening || k == ExamImage
}

type Question struct {
	Prompt   string   `json:"prompt" bson:"prompt"`
	ImageURL string   `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	AudioURL string   `json:"audioUrl,omitempty" bson:"audioUrl,omitempty"`
	Options  []string `json:"options,omitempty" bson:"options,omitempty"`
	Answer   string   `json:"answer,omitempty" bson:"answer,omitempty"`

	// rúbrica para writing / speaking
	MinWords int      `json:"minWords,omitempty" bson:"minWords,omitempty"`
	MaxWords int      `json:"maxWords,omitempty" bson:"maxWords,omitempty"`
	Keywords []string `json:"keywords,omitempty" bson:"keywords,omitempty"`

	Points float64 `json:"points,omitempty" bson:"points,omitempty"`
}

type Exam struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Kind             ExamKind           `json:"kind" bson:"kind"`
	Title            string             `json:"title" bson:"title"`
	Level            string             `json:"level,omitempty" bson:"level,omitempty"`
	Passage          string             `json:"passage,omitempty" bson:"passage,omitempty"`
	AudioURL         string             `json:"audioUrl,omitempty" bson:"audioUrl,omitempty"`
	TimeLimitSeconds int                `json:"timeLimitSeconds,omitempty" bson:"timeLimitSeconds,omitempty"`
	Questions        []Question         `json:"questions" bson:"questions"`
	CreatedAt        time.Time          `json:"createdAt" bson:"createdAt"`
}

// Public devuelve una copia sin respuestas ni keywords (lo que ve el alumno).
func (e Exam) Public() Exam {
	out := e
	out.Questions = make([]Question, len(e.Questions))
	for i, q := range e.Questions {
		q.Answer = ""
		q.Keywords = nil
		out.Questions[i] = q
	}
	return out
}
