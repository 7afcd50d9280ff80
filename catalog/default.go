package catalog

import "SurveyBot/model"

// DefaultMessages are the texts of the English-learning survey.
var DefaultMessages = Messages{
	Greeting:        "Привіт! Давай почнемо опитування. Відповідай на питання.",
	Completion:      "Дякую за ваші відповіді! Ми збережемо вашу інформацію.",
	TransientError:  "Не вдалося зберегти відповідь. Спробуйте, будь ласка, ще раз.",
	ChoiceConfirmed: "✅ Ваша відповідь: %s",
}

func (m Messages) withDefaults() Messages {
	if m.Greeting == "" {
		m.Greeting = DefaultMessages.Greeting
	}
	if m.Completion == "" {
		m.Completion = DefaultMessages.Completion
	}
	if m.TransientError == "" {
		m.TransientError = DefaultMessages.TransientError
	}
	if m.ChoiceConfirmed == "" {
		m.ChoiceConfirmed = DefaultMessages.ChoiceConfirmed
	}
	return m
}

var defaultQuestions = []model.Question{
	{Column: model.ColumnFullName, Prompt: "Ваше ім'я та прізвище?"},
	{Column: model.ColumnReason, Prompt: "Чому ви вирішили вивчати англійську саме зараз?"},
	{Column: model.ColumnObstacle, Prompt: "Що для вас є найбільшою перешкодою у вивченні англійської?"},
	{Column: model.ColumnFutureUse, Prompt: "Як ви плануєте використовувати свої знання англійської мови в майбутньому?"},
	{
		Column:  model.ColumnInterest,
		Prompt:  "Які аспекти англійської мови вас цікавлять найбільше?",
		Choices: []string{"Граматика", "Розмовна мова", "Бізнес-англійська", "Підготовка до іспитів"},
	},
	{
		Column:  model.ColumnFormat,
		Prompt:  "Який формат навчання вам більше підходить?",
		Choices: []string{"Індивідуальні заняття", "Групові заняття", "Заняття в парі"},
	},
	{
		Column:  model.ColumnPace,
		Prompt:  "Який темп навчання для вас найбільш комфортний?",
		Choices: []string{"1 раз на тиждень", "2 рази на тиждень", "3 рази на тиждень", "Мікро-навчання"},
	},
	{Column: model.ColumnHobbies, Prompt: "Які у вас хобі та інтереси?"},
	{Column: model.ColumnDailyUse, Prompt: "Як часто ви використовуєте англійську мову в повсякденному житті?"},
	{Column: model.ColumnFavorites, Prompt: "Які ваші улюблені фільми, книги, музика англійською мовою?"},
}

// Default returns the built-in ten question survey.
func Default() *Catalog {
	c, err := New(defaultQuestions, DefaultMessages)
	if err != nil {
		panic("catalog: built-in survey is invalid: " + err.Error())
	}
	return c
}
