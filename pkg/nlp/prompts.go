package nlp

const (
	transactionSystemInstruction = `Você é um parser financeiro. ` +
		`Retorne apenas um JSON com as chaves amount, date, category, location, type. ` +
		`amount é numérico, date no formato YYYY-MM-DD, type é "expense" ou "income". ` +
		`Use null para qualquer campo que não estiver presente no texto. ` +
		`Não inclua nada além do JSON.`

	goalSystemInstruction = `Você é um parser de metas financeiras. ` +
		`Extraia do texto um JSON com as chaves: target_amount, start_date, end_date, frequency, name. ` +
		`target_amount é numérico, datas no formato YYYY-MM-DD, ` +
		`frequency é "one-time", "monthly" ou "yearly", name é um resumo curto da meta. ` +
		`Use null para campos ausentes. Não inclua nada além do JSON.`

	insightSystemInstruction = `Você é um analista financeiro.`

	chatSystemInstruction = `Você é um assistente financeiro. ` +
		`Responda em português, de forma curta e clara.`
)

// Generation parameters per domain. Parsers run at temperature 0 so equal
// inputs yield equal outputs; insights get headroom for prose.
const (
	parseMaxOutputTokens   int32   = 256
	parseTemperature       float32 = 0
	insightMaxOutputTokens int32   = 512
	insightTemperature     float32 = 0.5
	chatMaxOutputTokens    int32   = 512
	chatTemperature        float32 = 0.7
)
