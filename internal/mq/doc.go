// Package mq — публикация событий Keeper в RabbitMQ.
//
// Keeper публикует два типа событий:
//
//   - account.settled — завершился workflow одного аккаунта
//   - cycle.completed — завершился полный цикл по всем аккаунтам
//
// События информационные: их потеря не влияет на результат цикла,
// поэтому publisher опционален (nil — события не публикуются) и все
// ошибки публикации деградируют до WARN-лога.
//
// Connection автоматически переподключается при разрыве.
package mq
