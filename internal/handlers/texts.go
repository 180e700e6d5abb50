package handlers

// ---------- кнопки ----------
const (
	btnAddDeadline       = "📅 Добавить дедлайн"
	btnAddTask           = "📅 Добавить задание"
	btnMyDeadlines       = "📅 Мои дедлайны"
	btnConfirmDeadline   = "✅ Добавить дедлайн"
	btnEditDeadline      = "✏️ Редактировать"
	btnCancelDeadline    = "❌ Отмена"
	btnStartFocus        = "🎯 Начать фокус"
	btnStartFocusSession = "🎯 Начать фокус-сессию"
	btnNewSession        = "🔄 Новая сессия"
	btnStats             = "📊 Статистика"
	btnProgress          = "📊 Мой прогресс"

	btnFocus25 = "🍅 25 мин"
	btnFocus50 = "🔥 50 мин"
	btnFocus15 = "⚡ 15 мин"

	btnFreshman = "🎓 Первокурсник"
	btnBachelor = "💼 Бакалавр"
	btnMaster   = "🔬 Магистр"
	btnPhD      = "🎯 Аспирант/Исследователь"

	skipKeyword = "пропустить"
)

// ---------- онбординг ----------
const (
	txtWelcomeBack = "👋 С возвращением в *Focus Campus*!\n\n" +
		"Что хотите сделать?\n" +
		"• 📅 Добавить дедлайн\n" +
		"• 🎯 Начать фокус-сессию\n" +
		"• 📊 Посмотреть прогресс"

	txtWelcome = "🎓 Добро пожаловать в *Focus Campus*!\n\n" +
		"Я помогу вам организовать учебный процесс:\n" +
		"• 📚 Автоматически собирать дедлайны\n" +
		"• 🎯 Следить за фокус-сессиями Pomodoro\n" +
		"• ⏰ Напоминать о важных событиях\n\n" +
		"Давайте настроим ваш профиль! Это займет всего *60 секунд*.\n\n" +
		"*Шаг 1 из 5*: В каком вы вузе учитесь?"

	txtAskGroup = "🎯 *Шаг 2 из 5*: Какая у вас группа или курс?\n\n" +
		"Например: `Б05-123` или `1 курс магистратуры`"

	txtAskRole = "👤 *Шаг 3 из 5*: Кто вы?\n\nВыберите наиболее подходящий вариант:"

	txtAskCalendar = "📅 *Шаг 4 из 5*: Есть ли у вас ссылка на расписание?\n\n" +
		"Если да - пришлите ссылку на .ics файл или публичный календарь.\n" +
		"Если нет - просто напишите \"пропустить\""

	txtAskTags = "🏷️ *Шаг 5 из 5*: Какие предметы у вас сейчас?\n\n" +
		"Перечислите через запятую, например:\n" +
		"`математика, программирование, физика, английский`"

	tplOnboardingDone = "🎉 *Настройка завершена!*\n\n" +
		"• 🎓 Вуз: %s\n" +
		"• 👥 Группа: %s\n" +
		"• 👤 Роль: %s\n" +
		"• 🏷️ Предметы: %s\n\n" +
		"Теперь вы можете:\n" +
		"• 📅 Добавлять дедлайны (просто пришлите текст задания)\n" +
		"• 🎯 Запускать фокус-сессии командой /focus\n" +
		"• 📊 Смотреть прогресс командой /stats\n\n" +
		"*Focus Campus готов помочь вам в учебе!* 🚀"

	txtNeedOnboarding = "⚠️ Сначала завершите настройку профиля командой /start"
)

// ---------- фокус ----------
const (
	txtChooseDuration = "🎯 *Фокус-сессия Pomodoro*\n\n" +
		"Выберите продолжительность:\n" +
		"• 🍅 25 минут (стандартный Pomodoro)\n" +
		"• 🔥 50 минут (глубокая работа)\n" +
		"• ⚡ 15 минут (быстрая задача)"

	txtPickFromButtons = "Пожалуйста, выберите вариант из списка кнопок."

	tplFocusStarted = "⏰ *Фокус-сессия началась!*\n\n" +
		"Продолжительность: %d минут\n" +
		"Время окончания: %s\n\n" +
		"🚫 Отключите уведомления\n" +
		"💧 Поставьте воду рядом\n" +
		"📵 Уберите отвлекающие факторы\n\n" +
		"*Удачи в работе!* 💪"

	tplFocusDone = "✅ *Фокус-сессия завершена!*\n\n" +
		"Отличная работа! %d минут продуктивной работы позади.\n\n" +
		"Сделайте перерыв:\n" +
		"• 🚶 Пройдитесь 5 минут\n" +
		"• 💧 Выпейте воды\n" +
		"• 🧘 Сделайте разминку"
)

// ---------- дедлайны ----------
const (
	tplDeadlineFound = "📅 *Найден дедлайн!*\n\n" +
		"• Задание: %s\n" +
		"• Предмет: %s\n" +
		"• Дедлайн: %s\n\n" +
		"Добавить в систему?"

	txtCandidateReplaced = "♻️ Предыдущий найденный дедлайн заменен новым.\n\n"

	tplDeadlineAdded = "✅ *Дедлайн добавлен!*\n\n" +
		"• Задание: %s\n" +
		"• Дедлайн: %s\n" +
		"• Предмет: %s\n\n" +
		"Я напомню вам за 24 часа, 3 часа и 30 минут до дедлайна! 🎯"

	txtDeadlineNotFound = "❌ Не удалось найти информацию о дедлайне. Попробуйте еще раз."
	txtDeadlineEdit     = "✏️ Пришлите исправленный текст задания одним сообщением."
	txtDeadlineCanceled = "Добавление дедлайна отменено."

	tplNoDeadlines   = "📭 У вас нет предстоящих дедлайнов на ближайшие %d дней!"
	txtDeadlinesHead = "📅 *Ваши ближайшие дедлайны:*\n\n"
	tplDeadlineItem  = "%s *%s*\n   📍 %s | ⏰ %s\n   🕐 Осталось: %d дней\n\n"
	tplDeadlinesMore = "... и еще %d дедлайнов"

	txtAddHintBusy = "Сначала завершите текущий шаг, затем можно будет добавить новое задание."
	txtAddHint     = "✍️ Пришлите описание задания одним сообщением: предмет, задачу и срок.\n" +
		"Я постараюсь распознать дедлайн автоматически."
)

// ---------- расписание, статистика, помощь ----------
const (
	tplSchedule = "📚 *Ваше расписание*\n\n" +
		"• 🎓 Вуз: %s\n" +
		"• 👥 Группа: %s\n" +
		"• 🏷️ Предметы: %s\n" +
		"• 📅 Календарь: %s\n\n" +
		"Используйте команды:\n" +
		"• /deadlines - показать дедлайны\n" +
		"• /focus - начать фокус-сессию\n" +
		"• /stats - статистика продуктивности"

	tplStats = "📊 *Ваша статистика продуктивности*\n\n" +
		"• ✅ Выполнено задач: %d\n" +
		"• 🎯 Завершено фокус-сессий: %d\n" +
		"• ⏱️ Всего времени в фокусе: %d минут\n" +
		"• 📅 Активных дедлайнов: %d\n\n" +
		"Продолжайте в том же духе!"

	txtHelp = "🆘 *Помощь по Focus Campus*\n\n" +
		"Основные команды:\n" +
		"• /start - начать работу с ботом\n" +
		"• /focus - начать фокус-сессию Pomodoro\n" +
		"• /deadlines - показать ближайшие дедлайны\n" +
		"• /schedule - информация о вашем расписании\n" +
		"• /stats - статистика продуктивности\n" +
		"• /help - показать эту справку\n\n" +
		"Просто пришлите текст задания с датой, и я автоматически его добавлю! 🎯"

	txtUnknownCommand = "Неизвестная команда. Список команд: /help"
	txtInternalError  = "😔 Что-то пошло не так. Попробуйте еще раз чуть позже."

	txtNotSet        = "не указано"
	txtNoTags        = "Не указаны"
	txtCalendarOn    = "Подключен ✅"
	txtCalendarOff   = "Не подключен ❌"
	layoutDate       = "02.01.2006"
	layoutDateTime   = "02.01.2006 15:04"
	layoutDateAtTime = "02.01.2006 в 15:04"
	layoutClock      = "15:04"
)
