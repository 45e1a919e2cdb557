package main

import (
	"iter"
	"time"

	"github.com/poiesic/radiolex/core"
)

type sample struct {
	offset    time.Duration
	area      string
	frequency float64
	callSigns []string
	body      string
}

var samples = []sample{
	{0, "Север", 146.5, []string{"Сокол", "Береза"}, "Береза, я Сокол. Координаты цели квадрат семь, пеленг сорок два. Прием."},
	{3 * time.Minute, "Север", 146.5, []string{"Береза", "Сокол"}, "Сокол, принял. Координаты подтверждаю, квадрат семь."},
	{10 * time.Minute, "Север", 146.5, []string{"Сокол"}, "Вижу технику на позиции у ориентира два, танк и два бтр."},
	{25 * time.Minute, "Юг", 150.25, []string{"Ветер", "Гром"}, "Гром, у нас раненый, нужна эвакуация, медик на точку."},
	{31 * time.Minute, "Юг", 150.25, []string{"Гром", "Ветер"}, "Ветер, эвакуация через двадцать минут, раненого готовьте."},
	{47 * time.Minute, "Юг", 150.25, []string{"Ветер"}, "Боекомплект на исходе, патроны и снаряды нужны срочно."},
	{time.Hour, "Восток", 142.0, []string{"Кедр"}, "Колонна выдвигаемся на марш, движение по основной дороге."},
	{time.Hour + 12*time.Minute, "Восток", 142.0, []string{"Кедр", "Дуб"}, "Дуб, колонна прибыл на рубеж, занимаем оборону."},
	{time.Hour + 40*time.Minute, "Восток", 142.0, []string{"Дуб"}, "Атака на квадрат девять начинается, штурм по сигналу."},
	{2 * time.Hour, "Восток", 142.0, []string{"Кедр"}, "Отход группы на исходные, отступление прикрывает миномет."},
	{2*time.Hour + 5*time.Minute, "Север", 146.5, []string{"Береза"}, "Помехи на частоте, переходим на запасную частоту, как слышно."},
	{2*time.Hour + 20*time.Minute, "Север", 146.5, []string{"Сокол", "Береза"}, "Координаты цели квадрат восемь, пеленг тридцать, дрон над позицией."},
	{3 * time.Hour, "Юг", 150.25, []string{"Гром"}, "Подвоз топлива и провизия ожидается к вечеру, снабжение по графику."},
	{3*time.Hour + 30*time.Minute, "Юг", 150.25, []string{"Ветер", "Гром"}, "Двухсотый и два трехсотых, потери уточняем, медик работает."},
	{4 * time.Hour, "Восток", 142.0, []string{"Дуб"}, "Засада у моста, техника противника, бмп и миномет."},
}

// sampleMessages yields the built-in sample intercepts, timestamped relative
// to a base a day before now.
func sampleMessages(now time.Time) iter.Seq2[*core.Message, error] {
	base := now.Add(-24 * time.Hour).Truncate(time.Minute)
	return func(yield func(*core.Message, error) bool) {
		for _, s := range samples {
			msg := &core.Message{
				Timestamp: base.Add(s.offset),
				Body:      s.body,
				Area:      s.area,
				Frequency: s.frequency,
				CallSigns: s.callSigns,
			}
			if !yield(msg, nil) {
				return
			}
		}
	}
}
