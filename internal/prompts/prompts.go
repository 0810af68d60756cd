package prompts

import (
	"fmt"
)

const lessonPlanTemplate = `Genera una planeación didáctica para una clase de %s en %s. El tema específico es "%s" y debe enfocarse en el siguiente aprendizaje esperado: "%s". La clase dura %s. Incluye:
- Propósito
- Actividades de inicio, desarrollo y cierre
- Recursos didácticos
- Evaluación sugerida
Escribe en español en formato claro.`

// BuildLessonPlan interpolates the five lesson fields verbatim, without
// escaping, into the lesson plan request.
func BuildLessonPlan(subject, grade, competency, duration, topic string) string {
	return fmt.Sprintf(lessonPlanTemplate, subject, grade, topic, competency, duration)
}
