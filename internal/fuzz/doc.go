// Package fuzztests houses Go fuzz harnesses for the template lexer. Its
// goal is to guard against panics and broken position bookkeeping on
// arbitrary inputs.
//
// Назначение: загрузить байты в FileSet, прогнать лексер в обоих режимах и
// проверить инварианты позиций через internal/testkit.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
